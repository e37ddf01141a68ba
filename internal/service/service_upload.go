package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/MKhiriev/pilot-docs-intake/internal/store"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// UploadPrefix is the namespace every upload is stored under. The sweeper
// only ever lists this prefix.
const UploadPrefix = "pilot-docs/"

type uploadService struct {
	blobs   store.BlobStore
	metrics *metrics.Domain
	logger  *logger.Logger

	now func() time.Time
}

// NewUploadService constructs an UploadService writing to blobs. It expects
// requests that already passed validation, see [NewUploadValidationService].
func NewUploadService(blobs store.BlobStore, m *metrics.Domain, logger *logger.Logger) UploadService {
	return &uploadService{
		blobs:   blobs,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error) {
	log := logger.FromContext(ctx).WithUpload(req.SessionID, string(req.DocumentType))

	_, data, err := utils.DecodeDataURL(req.File)
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("%w: %w", ErrInvalidFileEncoding, err)
	}
	if len(data) == 0 {
		return models.UploadResponse{}, fmt.Errorf("%w: decoded file is empty", ErrMissingUploadFields)
	}
	if len(data) > models.MaxDocumentSize {
		log.Warn().Int("size", len(data)).Msg("upload rejected: file too large")
		return models.UploadResponse{}, ErrFileTooLarge
	}

	pathname := uploadPathname(req, s.now())
	blob, err := s.blobs.Put(ctx, pathname, data)
	if err != nil {
		log.Err(err).Str("func", "uploadService.Upload").
			Str("pathname", pathname).
			Msg("error storing document")
		return models.UploadResponse{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	s.metrics.UploadStored(blob.Size)

	log.Info().
		Str("pathname", blob.Pathname).
		Int64("size", blob.Size).
		Str("sha256", utils.Checksum(data)).
		Msg("document stored")

	return models.UploadResponse{
		Success:      true,
		URL:          blob.URL,
		Size:         blob.Size,
		UploadedAt:   blob.UploadedAt,
		DocumentType: req.DocumentType,
		FileName:     req.FileName,
	}, nil
}

// uploadPathname returns pilot-docs/<session>/<type>/<unixMillis>_<fileName>.
func uploadPathname(req models.UploadRequest, at time.Time) string {
	return UploadPrefix + req.SessionID + "/" + string(req.DocumentType) + "/" +
		strconv.FormatInt(at.UnixMilli(), 10) + "_" + req.FileName
}

// uploadFileName recovers the client file name from a blob URL. For objects
// written by uploadPathname the "<unixMillis>_" prefix is dropped; any other
// URL yields its last path segment. It returns "" when there is none.
func uploadFileName(blobURL string) string {
	u, err := url.Parse(blobURL)
	if err != nil {
		return ""
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}

	if millis, rest, found := strings.Cut(name, "_"); found && rest != "" {
		if _, err := strconv.ParseInt(millis, 10, 64); err == nil {
			name = rest
		}
	}

	// the name only labels the archive entry; drop anything the document
	// validator would refuse
	if len(name) > 255 || strings.HasPrefix(name, ".") || strings.Contains(name, "..") ||
		strings.ContainsFunc(name, func(r rune) bool { return r == '\\' || unicode.IsControl(r) }) {
		return ""
	}
	return name
}
