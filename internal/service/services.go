package service

import (
	"github.com/MKhiriev/pilot-docs-intake/internal/adapter"
	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/MKhiriev/pilot-docs-intake/internal/store"
)

type Services struct {
	UploadService     UploadService
	SubmissionService SubmissionService
	CleanupService    CleanupService
}

func NewServices(storages *store.Storages, transport adapter.MailTransport, cfg config.StructuredConfig, m *metrics.Domain, logger *logger.Logger) *Services {
	uploadService := NewUploadValidationService().
		Wrap(NewUploadService(storages.BlobStore, m, logger))

	assembler := NewAssembler(storages.BlobStore, cfg.Mail, logger)
	dispatcher := NewDispatcher(transport, cfg.Mail, m, logger)

	return &Services{
		UploadService:     uploadService,
		SubmissionService: NewSubmissionService(assembler, dispatcher, cfg.Server, logger),
		CleanupService:    NewCleanupService(storages.BlobStore, cfg.Cleanup, m, logger),
	}
}
