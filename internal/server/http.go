package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	// writeSlack is added on top of the longest handler deadline so a 408
	// can still be written after the submission deadline fires.
	writeSlack      = 5 * time.Second
	shutdownTimeout = 15 * time.Second
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(router http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      max(cfg.RequestTimeout, cfg.SubmitTimeout) + writeSlack,
		},
		logger: logger,
	}
}

// RunServer blocks until the server stops. A closed server is not an error.
func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.server.Addr).Msg("Launching HTTP server")
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
