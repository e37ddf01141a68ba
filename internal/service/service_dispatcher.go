// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/pilot-docs-intake/internal/adapter"
	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// TestModePolicy sends submissions made by test accounts to a dedicated
// mailbox instead of the production recipient. It applies before the primary
// send and is not a fallback.
//
// Pending product confirmation; see DESIGN.md.
type TestModePolicy struct {
	// Marker is matched case-insensitively against the submitter's name.
	Marker        string
	Recipient     string
	SubjectPrefix string
}

// Applies reports whether submitterName contains the marker.
func (p TestModePolicy) Applies(submitterName string) bool {
	if p.Marker == "" || p.Recipient == "" {
		return false
	}
	return strings.Contains(strings.ToLower(submitterName), strings.ToLower(p.Marker))
}

// FallbackPolicy describes the single backup copy sent when the primary
// recipient was not accepted.
//
// Pending product confirmation; see DESIGN.md.
type FallbackPolicy struct {
	Recipient     string
	SubjectPrefix string
}

// NewTestModePolicy returns the policy for cfg: names containing "test" go
// to cfg.TestRecipient with a "[TEST] " subject prefix.
func NewTestModePolicy(cfg config.Mail) TestModePolicy {
	return TestModePolicy{
		Marker:        "test",
		Recipient:     cfg.TestRecipient,
		SubjectPrefix: "[TEST] ",
	}
}

// NewFallbackPolicy returns the policy for cfg: the backup copy goes to the
// sending account itself with a "[BACKUP DELIVERY] " subject prefix.
func NewFallbackPolicy(cfg config.Mail) FallbackPolicy {
	return FallbackPolicy{
		Recipient:     cfg.Username,
		SubjectPrefix: "[BACKUP DELIVERY] ",
	}
}

type dispatcher struct {
	transport adapter.MailTransport
	cfg       config.Mail
	testMode  TestModePolicy
	fallback  FallbackPolicy
	metrics   *metrics.Domain
	logger    *logger.Logger
}

// NewDispatcher constructs a Dispatcher sending through transport with the
// default policies for cfg.
func NewDispatcher(transport adapter.MailTransport, cfg config.Mail, m *metrics.Domain, logger *logger.Logger) Dispatcher {
	return &dispatcher{
		transport: transport,
		cfg:       cfg,
		testMode:  NewTestModePolicy(cfg),
		fallback:  NewFallbackPolicy(cfg),
		metrics:   m,
		logger:    logger,
	}
}

// Dispatch sends msg once to the production recipient, or to the test
// mailbox for test submitters. A transport error is returned as is, wrapped
// in [ErrDeliveryFailed], and never retried. A recipient the server did not
// accept triggers exactly one backup send whose outcome is only logged and
// reported.
func (d *dispatcher) Dispatch(ctx context.Context, msg models.NotificationMessage, submitterName string) (models.DeliveryReport, error) {
	if err := d.cfg.Ready(); err != nil {
		return models.DeliveryReport{}, fmt.Errorf("%w: %w", ErrMailNotConfigured, err)
	}
	log := logger.FromContext(ctx).WithSubmission(msg.SubmissionID)

	msg.To = d.cfg.Recipient
	if d.testMode.Applies(submitterName) {
		msg.To = d.testMode.Recipient
		msg.Subject = d.testMode.SubjectPrefix + msg.Subject
		log.Info().Str("recipient", msg.To).Msg("test submission, redirecting to test mailbox")
	}

	log.Info().
		Str("phase", "pre-send").
		Str("recipient", msg.To).
		Str("subject", msg.Subject).
		Int("attachment_size", attachmentSize(msg)).
		Msg("sending notification")

	result, err := d.transport.Send(ctx, msg)
	if err != nil {
		d.metrics.Delivery(metrics.OutcomeFailed)
		log.Err(err).Str("func", "dispatcher.Dispatch").
			Str("recipient", msg.To).
			Msg("notification delivery failed")
		return models.DeliveryReport{}, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	report := models.DeliveryReport{
		MessageID: result.MessageID,
		Recipient: msg.To,
		Accepted:  result.Accepted,
		Rejected:  result.Rejected,
		Pending:   result.Pending,
	}

	log.Info().
		Str("phase", "post-send analysis").
		Str("message_id", result.MessageID).
		Strs("accepted", result.Accepted).
		Strs("rejected", result.Rejected).
		Strs("pending", result.Pending).
		Msg("transport result received")

	if result.IsAccepted(msg.To) {
		d.metrics.Delivery(metrics.OutcomeDelivered)
		return report, nil
	}

	report.Fallback = d.sendFallback(ctx, msg, log)
	return report, nil
}

// sendFallback issues the one backup copy. It never returns an error: the
// primary send already went through at the transport level.
func (d *dispatcher) sendFallback(ctx context.Context, msg models.NotificationMessage, log *logger.Logger) *models.FallbackReport {
	backup := msg
	backup.To = d.fallback.Recipient
	backup.Subject = d.fallback.SubjectPrefix + msg.Subject

	log.Warn().
		Str("recipient", msg.To).
		Str("fallback_recipient", backup.To).
		Msg("primary recipient not accepted, sending backup copy")

	report := &models.FallbackReport{Recipient: backup.To}

	result, err := d.transport.Send(ctx, backup)
	if err != nil {
		d.metrics.Delivery(metrics.OutcomeFallbackFailed)
		report.Error = err.Error()
		log.Err(err).Str("func", "dispatcher.sendFallback").Msg("backup delivery failed")
		return report
	}
	report.MessageID = result.MessageID

	if !result.IsAccepted(backup.To) {
		d.metrics.Delivery(metrics.OutcomeFallbackFailed)
		log.Error().
			Strs("rejected", result.Rejected).
			Msg("backup recipient not accepted either")
		return report
	}

	d.metrics.Delivery(metrics.OutcomeFallback)
	log.Info().Str("message_id", result.MessageID).Msg("backup copy delivered")
	return report
}

func attachmentSize(msg models.NotificationMessage) int {
	if msg.Archive == nil {
		return 0
	}
	return len(msg.Archive.Data)
}
