package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration is structurally invalid and the server must not start.
var (
	// ErrInvalidStorageConfigs indicates an unknown storage backend or a
	// backend without its location (directory or base URL).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates negative timeouts or rate limits.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates a negative sweep interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// Errors returned at call time by the readiness checks of handler-specific
// settings. Their absence does not stop the server from starting.
var (
	// ErrMailCredentialsMissing indicates EMAIL_USER or EMAIL_PASS is unset.
	ErrMailCredentialsMissing = errors.New("mail credentials are not configured")
	// ErrMailRecipientMissing indicates RECIPIENT_EMAIL is unset.
	ErrMailRecipientMissing = errors.New("mail recipient is not configured")
	// ErrCleanupKeyMissing indicates CLEANUP_KEY is unset.
	ErrCleanupKeyMissing = errors.New("cleanup key is not configured")
)
