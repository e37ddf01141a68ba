package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// errorStatusMap is checked in order: a timeout may wrap a delivery error and
// must still be reported as 408.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{service.ErrSubmissionTimeout, http.StatusRequestTimeout},
	{ErrRequestTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{ErrRateLimited, http.StatusTooManyRequests},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidMultipart, http.StatusBadRequest},
	{service.ErrMissingUploadFields, http.StatusBadRequest},
	{service.ErrInvalidUpload, http.StatusBadRequest},
	{service.ErrInvalidFileEncoding, http.StatusBadRequest},
	{service.ErrMissingPersonalInfo, http.StatusBadRequest},
	{service.ErrInvalidDocument, http.StatusBadRequest},

	{service.ErrUnauthorized, http.StatusUnauthorized},

	{service.ErrStorageUnavailable, http.StatusInternalServerError},
	{service.ErrRenderNotification, http.StatusInternalServerError},
	{service.ErrBuildArchive, http.StatusInternalServerError},
	{service.ErrMailNotConfigured, http.StatusInternalServerError},
	{service.ErrDeliveryFailed, http.StatusInternalServerError},
	{service.ErrCleanupNotConfigured, http.StatusInternalServerError},
	{service.ErrSweepFailed, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// errorMessages holds the caller-facing text of one endpoint: per error
// first, then per status. Internal error text is never sent to the client.
type errorMessages struct {
	byError  map[error]string
	byStatus map[int]string
	fallback string

	// echoMessage also sets the message field, which the form client reads.
	echoMessage bool
}

func (m errorMessages) message(err error, status int) string {
	for target, msg := range m.byError {
		if errors.Is(err, target) {
			return msg
		}
	}
	if msg, ok := m.byStatus[status]; ok {
		return msg
	}
	return m.fallback
}

var (
	uploadMessages = errorMessages{
		byError: map[error]string{
			service.ErrInvalidUpload:       "Invalid document type, session id or file name.",
			service.ErrInvalidFileEncoding: "File must be base64 encoded.",
			ErrInvalidJSON:                 "Invalid JSON was passed.",
		},
		byStatus: map[int]string{
			http.StatusBadRequest:            "Missing required fields: file, sessionId, documentType, fileName",
			http.StatusRequestEntityTooLarge: "File too large. Maximum size is 10MB.",
			http.StatusTooManyRequests:       "Too many uploads. Please wait and try again.",
		},
		fallback: "Failed to upload document. Please try again.",
	}

	submitMessages = errorMessages{
		byError: map[error]string{
			service.ErrMissingPersonalInfo: "Missing personal information.",
			service.ErrInvalidDocument:     "One of the attached documents is invalid.",
		},
		byStatus: map[int]string{
			http.StatusBadRequest:            "Invalid form submission.",
			http.StatusRequestTimeout:        "Submission timed out. Please try again.",
			http.StatusRequestEntityTooLarge: "Submission too large. Each document may be at most 10MB.",
		},
		fallback:    "Failed to submit form. Please try again.",
		echoMessage: true,
	}

	cleanupMessages = errorMessages{
		byStatus: map[int]string{
			http.StatusUnauthorized: "Unauthorized",
		},
		fallback: "Cleanup failed. Please check logs.",
	}
)

// writeError logs err with the request's logger and writes the endpoint's
// fixed message for it.
func writeError(w http.ResponseWriter, r *http.Request, err error, messages errorMessages) {
	status := statusFromError(err)
	msg := messages.message(err, status)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	resp := models.ErrorResponse{Success: false, Error: msg}
	if messages.echoMessage {
		resp.Message = msg
	}
	utils.WriteJSON(w, resp, status)
}
