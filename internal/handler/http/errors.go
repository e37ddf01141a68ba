// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised while decoding a request, before any service is
// called. Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when the body is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrRequestTooLarge is returned when the body exceeds the route's size
	// limit.
	ErrRequestTooLarge = errors.New("request body too large")

	// ErrInvalidMultipart is returned when a multipart submission cannot be
	// parsed or lacks the form part.
	ErrInvalidMultipart = errors.New("invalid multipart submission")

	// ErrRateLimited is returned when a client exceeded its upload rate.
	ErrRateLimited = errors.New("rate limit exceeded")
)
