package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/store"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

const (
	archiveNamePrefix  = "pilot-documents-"
	summaryEntryName   = "Submission_Summary.pdf"
	maxParallelFetches = 4
)

var (
	errNoDocumentSource = errors.New("document has no readable source")
	errEmptyDocument    = errors.New("empty document")
)

// summaryRenderer produces the optional PDF added to the archive.
type summaryRenderer func() ([]byte, error)

// documentResolver reads a document's bytes from the first source that
// yields them: inline content, a local file, then the blob store.
type documentResolver struct {
	blobs store.BlobStore
}

func (r *documentResolver) resolve(ctx context.Context, doc models.UploadedDocument) ([]byte, error) {
	if len(doc.Content) > 0 {
		return doc.Content, nil
	}

	var errs []error
	if doc.Path != "" {
		data, err := os.ReadFile(doc.Path)
		if err == nil && len(data) > 0 {
			return data, nil
		}
		if err == nil {
			err = errEmptyDocument
		}
		errs = append(errs, fmt.Errorf("path: %w", err))
	}
	if doc.URL != "" && r.blobs != nil {
		data, err := r.blobs.Get(ctx, doc.URL)
		if err == nil && len(data) > 0 {
			return data, nil
		}
		if err == nil {
			err = errEmptyDocument
		}
		errs = append(errs, fmt.Errorf("url: %w", err))
	}

	return nil, errors.Join(append([]error{errNoDocumentSource}, errs...)...)
}

// buildArchive writes one entry per catalog document that resolves to bytes.
// Sources are fetched concurrently; entries are written in catalog order.
// It returns nil when no document resolved. The summary, when requested, is
// only added next to at least one document.
func buildArchive(ctx context.Context, resolver *documentResolver, sub models.NormalizedSubmission, docs map[models.DocumentType]models.UploadedDocument, summary summaryRenderer) (*models.ArchiveBundle, error) {
	log := logger.FromContext(ctx).WithSubmission(sub.SubmissionID)

	resolved := make([][]byte, len(models.DocumentCatalog))
	var g errgroup.Group
	g.SetLimit(maxParallelFetches)
	for i, spec := range models.DocumentCatalog {
		doc, ok := docs[spec.Type]
		if !ok {
			continue
		}
		g.Go(func() error {
			data, err := resolver.resolve(ctx, doc)
			if err != nil {
				log.Warn().Err(err).
					Str(logger.FieldDocumentType, string(spec.Type)).
					Msg("skipping document: source unavailable")
				return nil
			}
			if len(data) > models.MaxDocumentSize {
				log.Warn().
					Str(logger.FieldDocumentType, string(spec.Type)).
					Int("size", len(data)).
					Msg("skipping document: too large")
				return nil
			}
			resolved[i] = data
			return nil
		})
	}
	_ = g.Wait()

	modified := sub.ReceivedAt
	if modified.IsZero() {
		modified = time.Now()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	bundle := &models.ArchiveBundle{FileName: archiveNamePrefix + sub.SubmissionID + ".zip"}

	for i, spec := range models.DocumentCatalog {
		if resolved[i] == nil {
			continue
		}
		name := spec.ArchiveLabel + "." + docs[spec.Type].Extension()
		if err := writeArchiveEntry(zw, name, resolved[i], modified); err != nil {
			return nil, err
		}
		bundle.Entries = append(bundle.Entries, name)
		bundle.DocumentCount++
	}

	if bundle.DocumentCount == 0 {
		return nil, nil
	}

	if summary != nil {
		pdf, err := summary()
		if err != nil {
			log.Warn().Err(err).Msg("summary document not attached")
		} else {
			if err := writeArchiveEntry(zw, summaryEntryName, pdf, modified); err != nil {
				return nil, err
			}
			bundle.Entries = append(bundle.Entries, summaryEntryName)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildArchive, err)
	}
	bundle.Data = buf.Bytes()

	return bundle, nil
}

func writeArchiveEntry(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBuildArchive, name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBuildArchive, name, err)
	}
	return nil
}
