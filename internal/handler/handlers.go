package handler

import (
	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/handler/http"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, registry *prometheus.Registry, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if registry == nil {
		return nil, errNoMetricsRegistry
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, registry, logger),
	}, nil
}
