package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
)

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		// request bodies carry documents and are never logged
		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int64("request_size", r.ContentLength).
			Int("size", lw.size).
			Send()
	})
}
