// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
)

// orphanReconciler is the part of service.FormService the audit needs.
type orphanReconciler interface {
	FindOrphanTables(ctx context.Context) ([]string, error)
	DropOrphanTables(ctx context.Context, candidates []string) ([]string, error)
}

// orphanAuditor periodically reports provisioned tables that no form
// references. With drop enabled a table is dropped only once it has been
// orphaned on two consecutive passes, so a table whose form row is still
// being inserted is never touched.
type orphanAuditor struct {
	forms    orphanReconciler
	interval time.Duration
	drop     bool

	// suspects are the orphans seen on the previous pass.
	suspects []string

	logger *logger.Logger
}

func newOrphanAuditor(forms orphanReconciler, interval time.Duration, drop bool, logger *logger.Logger) *orphanAuditor {
	return &orphanAuditor{
		forms:    forms,
		interval: interval,
		drop:     drop,
		logger:   logger,
	}
}

func (a *orphanAuditor) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.audit(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.audit(ctx)
		}
	}
}

func (a *orphanAuditor) audit(ctx context.Context) {
	orphans, err := a.forms.FindOrphanTables(ctx)
	if err != nil {
		a.logger.Err(err).Msg("orphan table audit failed")
		return
	}

	for _, table := range orphans {
		a.logger.Warn().Str("table_name", table).Msg("provisioned table has no form")
	}

	if a.drop {
		candidates := lo.Intersect(a.suspects, orphans)
		if len(candidates) > 0 {
			dropped, err := a.forms.DropOrphanTables(ctx, candidates)
			if err != nil {
				a.logger.Err(err).Msg("dropping orphan tables failed")
			}
			for _, table := range dropped {
				a.logger.Info().Str("table_name", table).Msg("orphan table dropped")
			}
			orphans = lo.Without(orphans, dropped...)
		}
	}

	a.suspects = orphans
}
