package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. The orphan audit runs only
// with a positive interval.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.OrphanAuditInterval > 0 {
		w.workers = append(w.workers, newOrphanAuditor(services.FormService, cfg.OrphanAuditInterval, cfg.DropOrphans, logger))
		logger.Info().
			Dur("interval", cfg.OrphanAuditInterval).
			Bool("drop_orphans", cfg.DropOrphans).
			Msg("orphan table audit enabled")
	}

	return w
}

// Len returns the number of configured workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run runs every worker concurrently until ctx is cancelled or one fails.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}
