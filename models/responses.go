package models

import "time"

// UploadResponse is returned after a document was stored.
type UploadResponse struct {
	Success      bool         `json:"success"`
	URL          string       `json:"url"`
	Size         int64        `json:"size"`
	UploadedAt   time.Time    `json:"uploadedAt"`
	DocumentType DocumentType `json:"documentType"`
	FileName     string       `json:"fileName"`
}

// SubmitResponse is returned after the notification was handed to the mail
// transport, including the case where only the backup copy went out.
type SubmitResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	EmailID      string    `json:"emailId"`
	SubmissionID string    `json:"submissionId"`
	Timestamp    time.Time `json:"timestamp"`
}

// CleanupResult summarizes one sweep over the stored uploads.
type CleanupResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedFiles int    `json:"deletedFiles"`
	FreedSpace   string `json:"freedSpace"`
	TotalChecked int    `json:"totalChecked"`

	// FreedBytes is the exact figure behind FreedSpace.
	FreedBytes int64 `json:"-"`
	// FailedDeletes counts objects whose deletion was rejected.
	FailedDeletes int `json:"-"`
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
