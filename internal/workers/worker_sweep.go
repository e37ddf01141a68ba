// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
)

// SweepWorker runs the expiry sweep on a fixed interval, replacing the
// external cron call to the cleanup endpoint.
type SweepWorker struct {
	cleanup  service.CleanupService
	key      string
	interval time.Duration

	logger *logger.Logger
}

func NewSweepWorker(cleanup service.CleanupService, key string, interval time.Duration, logger *logger.Logger) *SweepWorker {
	return &SweepWorker{
		cleanup:  cleanup,
		key:      key,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once per interval until ctx is cancelled. The first sweep
// happens one interval after start.
func (s *SweepWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("sweep worker started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sweep worker stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			s.sweep(ctx)
		}
	}
}

func (s *SweepWorker) sweep(ctx context.Context) {
	result, err := s.cleanup.Cleanup(ctx, s.key)
	if err != nil {
		s.logger.Err(err).Msg("scheduled sweep failed")
		return
	}

	s.logger.Info().
		Int("deleted", result.DeletedFiles).
		Int("failed", result.FailedDeletes).
		Int("checked", result.TotalChecked).
		Str("freed", result.FreedSpace).
		Msg("scheduled sweep finished")
}
