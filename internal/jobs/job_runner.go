package jobs

import (
	"context"

	"medequip-console/internal/config"
	"medequip-console/internal/domain"
	"medequip-console/internal/lifecycle"
	"medequip-console/internal/logger"
)

// OverdueLister is the slice of the backend the overdue sweep needs.
type OverdueLister interface {
	ListOverdueRentals(ctx context.Context) ([]domain.Rental, error)
}

// JobRunner executes the console's background jobs.
type JobRunner struct {
	cfg        *config.Config
	controller *lifecycle.Controller
	rentals    OverdueLister
}

func NewJobRunner(cfg *config.Config, controller *lifecycle.Controller, rentals OverdueLister) *JobRunner {
	return &JobRunner{
		cfg:        cfg,
		controller: controller,
		rentals:    rentals,
	}
}

// Config returns the runner's configuration (used by the scheduler for cron specs)
func (r *JobRunner) Config() *config.Config {
	return r.cfg
}

// RefreshDashboard re-fetches the dashboard snapshot so the aggregates keep
// tracking the backend between operator actions.
func (r *JobRunner) RefreshDashboard() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.BackendTimeout())
	defer cancel()

	if err := r.controller.Refresh(ctx); err != nil {
		logger.Error("Dashboard refresh failed", "error", err)
		return
	}
	stats := r.controller.Stats()
	logger.Info("Dashboard refreshed",
		"rentals", stats.TotalRentals,
		"active", stats.ActiveRentals,
		"pending", stats.PendingRentals,
		"overdue", stats.OverdueRentals,
		"completed_revenue", stats.CompletedRevenue,
	)
}

// SweepOverdue surfaces the rentals the backend has marked overdue. The
// OVERDUE transition itself is backend-driven; the console only reports it.
func (r *JobRunner) SweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.BackendTimeout())
	defer cancel()

	overdue, err := r.rentals.ListOverdueRentals(ctx)
	if err != nil {
		logger.Error("Overdue sweep failed", "error", err)
		return
	}
	if len(overdue) == 0 {
		logger.Debug("Overdue sweep found nothing")
		return
	}
	for _, rental := range overdue {
		logger.Warn("Rental overdue",
			"rental_id", rental.ID,
			"end_date", rental.EndDate,
			"quantity", rental.Quantity,
		)
	}
}
