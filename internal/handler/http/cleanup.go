package http

import (
	"net/http"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// an unreadable body is treated as a missing key
	var req models.CleanupRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Debug().Err(err).Msg("cleanup request without a readable body")
	}

	result, err := h.services.CleanupService.Cleanup(r.Context(), req.CleanupKey)
	if err != nil {
		writeError(w, r, err, cleanupMessages)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
