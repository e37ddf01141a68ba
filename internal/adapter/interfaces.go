// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound transport used to deliver
// notifications.
//
// The primary abstraction is [MailTransport], which decouples the service
// layer from the SMTP client. The package ships a go-mail implementation
// ([NewSMTPTransport]).
//
// Error values defined in errors.go are produced by mapSendError so that
// callers can tell a fatal transport failure ([ErrTransport]) from recipients
// the server refused, which are reported in [models.SendResult.Rejected].
package adapter

import (
	"context"

	"github.com/MKhiriev/pilot-docs-intake/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_transport_mock.go -package=mock

// MailTransport sends one rendered notification.
type MailTransport interface {
	// Send delivers msg once, without retrying. A nil error with the
	// recipient missing from Accepted means the server refused it.
	// Connection, TLS and authentication problems return an error wrapping
	// [ErrTransport].
	Send(ctx context.Context, msg models.NotificationMessage) (models.SendResult, error)
}
