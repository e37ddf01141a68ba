package service

import "errors"

var (
	ErrMissingUploadFields = errors.New("missing required upload fields")
	ErrInvalidUpload       = errors.New("invalid upload")
	ErrInvalidFileEncoding = errors.New("file is not valid base64")
	ErrFileTooLarge        = errors.New("file too large")
	ErrStorageUnavailable  = errors.New("document storage unavailable")

	ErrMissingPersonalInfo = errors.New("submission has no personal information section")
	ErrInvalidDocument     = errors.New("invalid document in submission")
	ErrRenderNotification  = errors.New("could not render notification")
	ErrBuildArchive        = errors.New("could not build document archive")
	ErrMailNotConfigured   = errors.New("mail delivery is not configured")
	ErrDeliveryFailed      = errors.New("notification delivery failed")
	ErrSubmissionTimeout   = errors.New("submission deadline exceeded")

	ErrCleanupNotConfigured = errors.New("cleanup key is not configured")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSweepFailed          = errors.New("expiry sweep failed")
)
