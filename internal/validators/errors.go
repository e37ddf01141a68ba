package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingFile         = errors.New("file is required")
	ErrMissingSessionID    = errors.New("session id is required")
	ErrMissingDocumentType = errors.New("document type is required")
	ErrMissingFileName     = errors.New("file name is required")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrInvalidSessionID    = errors.New("invalid session id")
	ErrInvalidFileName     = errors.New("invalid file name")
	ErrDocumentTooLarge    = errors.New("document exceeds size limit")
	ErrDocumentNoSource    = errors.New("document has no content or reference")
)
