// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// The [Validator] interface validates arbitrary values and supports optional
// field-level scoping. [DocumentValidator] covers the intake requests: upload
// metadata (required fields, catalog document types, path-safe session ids
// and file names), submitted documents and sweep requests.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation and semantic checks.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
