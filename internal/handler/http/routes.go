package http

import (
	"net/http"

	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// routePrefixes serves every endpoint both at the root and under /api, the
// two layouts the form has been deployed with.
var routePrefixes = []string{"", "/api"}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	monitor := metrics.New(h.registry)
	upload := monitor.Monitor("upload", http.HandlerFunc(h.upload))
	submit := monitor.Monitor("submit", http.HandlerFunc(h.submit))
	cleanup := monitor.Monitor("cleanup", http.HandlerFunc(h.cleanup))

	for _, prefix := range routePrefixes {
		// routes called by the browser form
		router.Group(func(r chi.Router) {
			r.Use(h.withCORS)
			r.Options(prefix+"/upload-document", preflight)
			r.Options(prefix+"/submit-form", preflight)

			r.With(
				h.limiter.withRateLimit,
				middleware.RequestSize(maxRequestBody),
				withGZip,
			).Post(prefix+"/upload-document", upload)

			r.With(
				middleware.RequestSize(maxRequestBody),
				withGZip,
			).Post(prefix+"/submit-form", submit)
		})

		// scheduler route
		router.With(middleware.RequestSize(1<<10)).Post(prefix+"/cleanup-expired", cleanup)
	}

	router.Get("/metrics", metrics.Handler(h.registry).ServeHTTP)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
