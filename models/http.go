package models

// UploadRequest is the body of POST /upload-document.
type UploadRequest struct {
	// File is the base64 payload, optionally as a data URL
	// ("data:application/pdf;base64,....").
	File string `json:"file"`

	// SessionID groups every upload of one form-filling session.
	SessionID string `json:"sessionId"`

	// DocumentType must be one of the [DocumentCatalog] keys.
	DocumentType DocumentType `json:"documentType"`

	// FileName is the original client-side file name.
	FileName string `json:"fileName"`
}

// SubmitRequest carries a finalized form to the submission pipeline.
type SubmitRequest struct {
	// Form is the raw payload. Documents referenced inside it
	// (documents.<type>.data / .url) are collected by the service.
	Form FormSubmission

	// Documents holds files sent alongside the form, e.g. multipart parts.
	// They take precedence over references found inside Form.
	Documents map[DocumentType]UploadedDocument
}

// CleanupRequest is the body of POST /cleanup-expired.
type CleanupRequest struct {
	CleanupKey string `json:"cleanupKey"`
}
