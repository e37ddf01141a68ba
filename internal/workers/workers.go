package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers registers the background workers enabled by cfg. The result may
// hold no workers at all, in which case Run returns immediately.
func NewWorkers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.Workers.SweepInterval > 0 {
		w.workers = append(w.workers, NewSweepWorker(services.CleanupService, cfg.Cleanup.Key, cfg.Workers.SweepInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers registered")
	return w
}

// Run starts every worker in its own goroutine and waits for all of them to
// return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

// Len reports the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
