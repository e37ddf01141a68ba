package http

import "net/http"

const (
	corsAllowedMethods = "POST, OPTIONS"
	corsAllowedHeaders = "Content-Type"
)

// withCORS lets the browser form call the upload and submit routes from the
// configured origin. An empty origin falls back to "*".
func (h *Handler) withCORS(next http.Handler) http.Handler {
	origin := h.cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
		header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		if origin != "*" {
			header.Add("Vary", "Origin")
		}

		next.ServeHTTP(w, r)
	})
}

// preflight answers OPTIONS with an empty 200.
func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
