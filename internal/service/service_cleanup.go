package service

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/MKhiriev/pilot-docs-intake/internal/store"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"golang.org/x/sync/errgroup"
)

const (
	// RetentionWindow is how long an upload may stay unsubmitted. Objects
	// strictly older than this are deleted.
	RetentionWindow = 48 * time.Hour

	sweepPageSize      = 1000
	maxParallelDeletes = 8
)

type cleanupService struct {
	blobs   store.BlobStore
	cfg     config.Cleanup
	metrics *metrics.Domain
	logger  *logger.Logger

	now func() time.Time
}

func NewCleanupService(blobs store.BlobStore, cfg config.Cleanup, m *metrics.Domain, logger *logger.Logger) CleanupService {
	return &cleanupService{
		blobs:   blobs,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Cleanup deletes every upload under [UploadPrefix] older than
// [RetentionWindow]. The key is checked before anything is listed.
// A failed delete is logged and counted but does not stop the sweep; only
// successful deletes contribute to DeletedFiles and FreedSpace.
func (s *cleanupService) Cleanup(ctx context.Context, key string) (models.CleanupResult, error) {
	if err := s.cfg.Ready(); err != nil {
		return models.CleanupResult{}, fmt.Errorf("%w: %w", ErrCleanupNotConfigured, err)
	}
	if !utils.SecretsEqual(key, s.cfg.Key) {
		return models.CleanupResult{}, ErrUnauthorized
	}
	log := logger.FromContext(ctx)

	blobs, err := s.blobs.List(ctx, UploadPrefix, sweepPageSize)
	if err != nil {
		log.Err(err).Str("func", "cleanupService.Cleanup").Msg("error listing uploads")
		return models.CleanupResult{}, fmt.Errorf("%w: %w", ErrSweepFailed, err)
	}

	now := s.now()
	var (
		deleted atomic.Int64
		freed   atomic.Int64
		failed  atomic.Int64
	)

	var g errgroup.Group
	g.SetLimit(maxParallelDeletes)
	for _, blob := range blobs {
		if blob.Age(now) <= RetentionWindow {
			continue
		}
		g.Go(func() error {
			if err := s.blobs.Delete(ctx, blob.URL); err != nil {
				failed.Add(1)
				log.Warn().Err(err).
					Str("pathname", blob.Pathname).
					Msg("failed to delete expired upload")
				return nil
			}
			deleted.Add(1)
			freed.Add(blob.Size)
			log.Debug().
				Str("pathname", blob.Pathname).
				Dur("age", blob.Age(now)).
				Msg("expired upload deleted")
			return nil
		})
	}
	_ = g.Wait()

	result := models.CleanupResult{
		Success:       true,
		Message:       fmt.Sprintf("Cleanup completed: %d expired documents deleted", deleted.Load()),
		DeletedFiles:  int(deleted.Load()),
		FreedSpace:    formatFreedSpace(freed.Load()),
		TotalChecked:  len(blobs),
		FreedBytes:    freed.Load(),
		FailedDeletes: int(failed.Load()),
	}
	s.metrics.Sweep(result.DeletedFiles, result.FreedBytes, result.FailedDeletes)

	log.Info().
		Int("checked", result.TotalChecked).
		Int("deleted", result.DeletedFiles).
		Int("failed", result.FailedDeletes).
		Int64("freed_bytes", result.FreedBytes).
		Msg("expiry sweep completed")

	return result, nil
}

// formatFreedSpace renders bytes as whole mebibytes, e.g. "3MB".
func formatFreedSpace(bytes int64) string {
	return fmt.Sprintf("%dMB", int64(math.Round(float64(bytes)/(1<<20))))
}
