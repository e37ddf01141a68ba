package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/internal/validators"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// SubmitSuccessMessage is returned to the client once the notification went
// out, including when only the backup copy was accepted.
const SubmitSuccessMessage = "Form submitted successfully"

type submissionService struct {
	assembler  Assembler
	dispatcher Dispatcher
	validator  validators.Validator
	ids        *utils.UUIDGenerator
	timeout    time.Duration
	logger     *logger.Logger

	now func() time.Time
}

// NewSubmissionService constructs a SubmissionService. Each submission must
// complete within cfg.SubmitTimeout; zero leaves only the caller's deadline.
func NewSubmissionService(assembler Assembler, dispatcher Dispatcher, cfg config.Server, logger *logger.Logger) SubmissionService {
	return &submissionService{
		assembler:  assembler,
		dispatcher: dispatcher,
		validator:  validators.NewDocumentValidator(),
		ids:        utils.NewUUIDGenerator(),
		timeout:    cfg.SubmitTimeout,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, req models.SubmitRequest) (models.SubmitResponse, error) {
	sub, err := NormalizeSubmission(req.Form)
	if err != nil {
		return models.SubmitResponse{}, err
	}
	sub.SubmissionID = s.ids.Generate()
	sub.ReceivedAt = s.now().UTC()

	log := logger.FromContext(ctx).WithSubmission(sub.SubmissionID)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	docs, err := s.collectDocuments(ctx, req)
	if err != nil {
		return models.SubmitResponse{}, err
	}
	log.Info().
		Str("schema", sub.SchemaVersion).
		Int("documents", len(docs)).
		Msg("submission received")

	msg, err := s.assembler.Assemble(ctx, sub, docs)
	if err != nil {
		return models.SubmitResponse{}, deadlineError(ctx, err)
	}
	if ctx.Err() != nil {
		// nothing has been sent yet
		return models.SubmitResponse{}, deadlineError(ctx, ctx.Err())
	}

	report, err := s.dispatcher.Dispatch(ctx, msg, sub.SubmitterName())
	if err != nil {
		return models.SubmitResponse{}, deadlineError(ctx, err)
	}

	return models.SubmitResponse{
		Success:      true,
		Message:      SubmitSuccessMessage,
		EmailID:      report.MessageID,
		SubmissionID: sub.SubmissionID,
		Timestamp:    sub.ReceivedAt,
	}, nil
}

// collectDocuments merges the documents sent alongside the form with the
// ones referenced inside it (documents.<type>.data or .url). Attached files
// win over references for the same type.
func (s *submissionService) collectDocuments(ctx context.Context, req models.SubmitRequest) (map[models.DocumentType]models.UploadedDocument, error) {
	docs := make(map[models.DocumentType]models.UploadedDocument, len(models.DocumentCatalog))

	for docType, doc := range req.Documents {
		if doc.Type == "" {
			doc.Type = docType
		}
		docs[docType] = doc
	}

	for _, spec := range models.DocumentCatalog {
		if _, ok := docs[spec.Type]; ok {
			continue
		}
		doc, ok, err := documentFromForm(req.Form, spec.Type)
		if err != nil {
			return nil, err
		}
		if ok {
			docs[spec.Type] = doc
		}
	}

	for _, doc := range docs {
		if err := s.validator.Validate(ctx, doc); err != nil {
			if errors.Is(err, validators.ErrDocumentTooLarge) {
				return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, doc.Type)
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, doc.Type, err)
		}
	}

	return docs, nil
}

// documentFromForm reads documents.<type> from the form. The entry is either
// a URL string or an object with data (base64 or data URL), url, fileName
// and size. Entries with neither data nor url are ignored.
func documentFromForm(form models.FormSubmission, docType models.DocumentType) (models.UploadedDocument, bool, error) {
	raw, ok := form.Lookup("documents", string(docType))
	if !ok {
		return models.UploadedDocument{}, false, nil
	}

	if url, isString := raw.(string); isString {
		if url == "" {
			return models.UploadedDocument{}, false, nil
		}
		return models.UploadedDocument{Type: docType, URL: url, FileName: uploadFileName(url)}, true, nil
	}

	entry, ok := form.Object("documents", string(docType))
	if !ok {
		return models.UploadedDocument{}, false, nil
	}

	doc := models.UploadedDocument{Type: docType}
	if name := entry.String("fileName"); name != models.NotAvailable {
		doc.FileName = name
	} else if name := entry.String("name"); name != models.NotAvailable {
		doc.FileName = name
	}
	if size, ok := entry.Float("size"); ok && size > 0 {
		doc.Size = int64(size)
	}
	if url := entry.String("url"); url != models.NotAvailable {
		doc.URL = url
		if doc.FileName == "" {
			doc.FileName = uploadFileName(url)
		}
	}
	if data := entry.String("data"); data != models.NotAvailable {
		_, content, err := utils.DecodeDataURL(data)
		if err != nil {
			return models.UploadedDocument{}, false, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, docType, err)
		}
		doc.Content = content
		if doc.Size == 0 {
			doc.Size = int64(len(content))
		}
	}

	if !doc.HasSource() {
		return models.UploadedDocument{}, false, nil
	}
	return doc, true, nil
}

// deadlineError reports err as a timeout when the submission deadline has
// passed.
func deadlineError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrSubmissionTimeout, err)
	}
	return err
}
