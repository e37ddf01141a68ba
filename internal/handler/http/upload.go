package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, uploadMessages)
		return
	}

	resp, err := h.services.UploadService.Upload(r.Context(), req)
	if err != nil {
		writeError(w, r, err, uploadMessages)
		return
	}

	log.Info().
		Str("session_id", req.SessionID).
		Str("document_type", string(req.DocumentType)).
		Int64("size", resp.Size).
		Msg("document uploaded")

	utils.WriteJSON(w, resp, http.StatusOK)
}

// decodeJSON decodes the body into v, reporting an oversized body as
// [ErrRequestTooLarge] and anything else as [ErrInvalidJSON].
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return bodyError(err, ErrInvalidJSON)
	}
	return nil
}

func bodyError(err, fallback error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: limit %d bytes", ErrRequestTooLarge, maxBytesErr.Limit)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
