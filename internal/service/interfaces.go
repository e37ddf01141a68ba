package service

import (
	"context"

	"github.com/MKhiriev/pilot-docs-intake/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UploadService stores one supporting document per call.
type UploadService interface {
	Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error)
}

// SubmissionService turns a finalized form into a delivered notification.
type SubmissionService interface {
	Submit(ctx context.Context, req models.SubmitRequest) (models.SubmitResponse, error)
}

// CleanupService purges uploads older than the retention window.
type CleanupService interface {
	Cleanup(ctx context.Context, key string) (models.CleanupResult, error)
}

// Assembler renders the notification body and bundles the documents.
type Assembler interface {
	Assemble(ctx context.Context, sub models.NormalizedSubmission, docs map[models.DocumentType]models.UploadedDocument) (models.NotificationMessage, error)
}

// Dispatcher sends a notification once and compensates a refused primary
// recipient with a single backup copy.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg models.NotificationMessage, submitterName string) (models.DeliveryReport, error)
}
