package http

import (
	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// maxRequestBody caps every request body; a 10MB document grows by a third
// once base64 encoded.
const maxRequestBody = 15 << 20

type Handler struct {
	services *service.Services
	cfg      config.Server

	registry *prometheus.Registry
	limiter  *ipRateLimiter

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. HTTP metrics are registered on
// registry when [Handler.Init] is called, so each registry may back one
// router.
func NewHandler(services *service.Services, cfg config.Server, registry *prometheus.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		registry: registry,
		limiter:  newIPRateLimiter(cfg.UploadRateLimit, cfg.UploadRateBurst),
		logger:   logger,
	}
}
