package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/pilot-docs-intake/internal/validators"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// UploadServiceWrapper defines middleware composition for UploadService.
// Implementations wrap an existing UploadService to add behavior such as
// validating.
type UploadServiceWrapper interface {
	Wrap(UploadService) UploadService // returns a decorated UploadService applying additional behavior
}

type UploadValidationService struct {
	inner     UploadService
	validator validators.Validator
}

func NewUploadValidationService() UploadServiceWrapper {
	return &UploadValidationService{
		validator: validators.NewDocumentValidator(),
	}
}

// Upload rejects requests with missing or unsafe metadata before they reach
// the wrapped service. Nothing is decoded or stored for a rejected request.
func (v *UploadValidationService) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		if isMissingFieldError(err) {
			return models.UploadResponse{}, fmt.Errorf("%w: %w", ErrMissingUploadFields, err)
		}
		return models.UploadResponse{}, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}

	return v.inner.Upload(ctx, req)
}

func (v *UploadValidationService) Wrap(wrapped UploadService) UploadService {
	v.inner = wrapped
	return v
}

func isMissingFieldError(err error) bool {
	return errors.Is(err, validators.ErrMissingFile) ||
		errors.Is(err, validators.ErrMissingSessionID) ||
		errors.Is(err, validators.ErrMissingDocumentType) ||
		errors.Is(err, validators.ErrMissingFileName)
}
