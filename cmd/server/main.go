package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/pilot-docs-intake/internal/adapter"
	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/handler"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/MKhiriev/pilot-docs-intake/internal/server"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
	"github.com/MKhiriev/pilot-docs-intake/internal/store"
	"github.com/MKhiriev/pilot-docs-intake/internal/workers"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("pilot-docs-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("pilot-docs-server", cfg.LogLevel)
	log.Info().
		Str("version", buildInfo.Version).
		Str("commit", buildInfo.Commit).
		Str("address", cfg.Server.HTTPAddress).
		Str("storage_backend", cfg.Storage.Backend).
		Msg("received configs")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	transport := adapter.NewSMTPTransport(cfg.Mail, log)
	services := service.NewServices(storages, transport, *cfg, metrics.NewDomain(registry), log)

	handlers, err := handler.NewHandlers(services, cfg.Server, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, *cfg, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() models.AppBuildInfo {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)
	return info
}
