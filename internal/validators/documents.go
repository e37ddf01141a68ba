package validators

import (
	"context"
	"strings"
	"unicode"

	"github.com/MKhiriev/pilot-docs-intake/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldFile         = "file"
	FieldSessionID    = "session_id"
	FieldDocumentType = "document_type"
	FieldFileName     = "file_name"
	FieldSize         = "size"
	FieldSource       = "source"
)

const (
	maxSessionIDLength = 128
	maxFileNameLength  = 255
)

// DocumentValidator checks upload requests and submitted documents before
// anything touches storage or mail.
type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.UploadRequest and models.UploadedDocument, by value or pointer.
func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UploadRequest:
		return v.validateUploadRequest(value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(*value, fields...)

	case models.UploadedDocument:
		return v.validateUploadedDocument(value, fields...)
	case *models.UploadedDocument:
		return v.validateUploadedDocument(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateUploadRequest checks presence of every field first so that a
// request missing several of them reports a missing field rather than a
// malformed one.
func (v *DocumentValidator) validateUploadRequest(req models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFile, FieldSessionID, FieldDocumentType, FieldFileName}
	}

	for _, f := range fields {
		switch f {
		case FieldFile:
			if strings.TrimSpace(req.File) == "" {
				return ErrMissingFile
			}
		case FieldSessionID:
			if strings.TrimSpace(req.SessionID) == "" {
				return ErrMissingSessionID
			}
		case FieldDocumentType:
			if strings.TrimSpace(string(req.DocumentType)) == "" {
				return ErrMissingDocumentType
			}
		case FieldFileName:
			if strings.TrimSpace(req.FileName) == "" {
				return ErrMissingFileName
			}
		default:
			return ErrUnknownField
		}
	}

	for _, f := range fields {
		switch f {
		case FieldSessionID:
			if !isSafeSessionID(req.SessionID) {
				return ErrInvalidSessionID
			}
		case FieldDocumentType:
			if !models.IsKnownDocumentType(req.DocumentType) {
				return ErrUnknownDocumentType
			}
		case FieldFileName:
			if !isSafeFileName(req.FileName) {
				return ErrInvalidFileName
			}
		}
	}

	return nil
}

func (v *DocumentValidator) validateUploadedDocument(doc models.UploadedDocument, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDocumentType, FieldFileName, FieldSize, FieldSource}
	}

	for _, f := range fields {
		switch f {
		case FieldDocumentType:
			if !models.IsKnownDocumentType(doc.Type) {
				return ErrUnknownDocumentType
			}
		case FieldFileName:
			if doc.FileName != "" && !isSafeFileName(doc.FileName) {
				return ErrInvalidFileName
			}
		case FieldSize:
			if doc.Size > models.MaxDocumentSize || len(doc.Content) > models.MaxDocumentSize {
				return ErrDocumentTooLarge
			}
		case FieldSource:
			if !doc.HasSource() {
				return ErrDocumentNoSource
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isSafeSessionID accepts letters, digits, '-', '_' and '.', but not a
// bare "." or "..".
func isSafeSessionID(id string) bool {
	if len(id) > maxSessionIDLength || id == "." || id == ".." {
		return false
	}
	for _, r := range id {
		if r > unicode.MaxASCII {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}

// isSafeFileName rejects names that would leave their directory or hide
// themselves once used as the last path segment.
func isSafeFileName(name string) bool {
	if len(name) > maxFileNameLength || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
