// Package lifecycle drives the rental status state machine for the operator
// console and keeps the dashboard's aggregates consistent with the backend.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"medequip-console/internal/domain"
	"medequip-console/internal/logger"
)

// ErrTerminalStatus is returned when a transition is requested out of
// COMPLETED or CANCELLED. Terminal rentals never generate requests.
var ErrTerminalStatus = errors.New("rental is in a terminal status")

// transitions is the client-side view of the status machine. It gates UI
// affordances only; the backend remains the authority on every request.
// OVERDUE has no operator-initiated inbound edge — the backend drives it.
var transitions = map[domain.RentalStatus][]domain.RentalStatus{
	domain.RentalStatusPending:   {domain.RentalStatusConfirmed, domain.RentalStatusCancelled},
	domain.RentalStatusConfirmed: {domain.RentalStatusActive, domain.RentalStatusCancelled},
	domain.RentalStatusActive:    {domain.RentalStatusCompleted, domain.RentalStatusCancelled},
	domain.RentalStatusOverdue:   {domain.RentalStatusCompleted, domain.RentalStatusCancelled},
	domain.RentalStatusCompleted: {},
	domain.RentalStatusCancelled: {},
}

// operatorStatuses are the statuses the console can ask for.
var operatorStatuses = []domain.RentalStatus{
	domain.RentalStatusPending,
	domain.RentalStatusConfirmed,
	domain.RentalStatusActive,
	domain.RentalStatusCompleted,
	domain.RentalStatusCancelled,
}

// IsTerminal reports whether no transition ever leaves status.
func IsTerminal(status domain.RentalStatus) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

// CanTransition reports whether the client-side table allows from → to.
func CanTransition(from, to domain.RentalStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionOptions returns the statuses offered for a rental in the given
// status: every operator-selectable status except the current one, and none
// at all for terminal statuses.
func TransitionOptions(current domain.RentalStatus) []domain.RentalStatus {
	if IsTerminal(current) {
		return nil
	}
	out := make([]domain.RentalStatus, 0, len(operatorStatuses)-1)
	for _, status := range operatorStatuses {
		if status != current {
			out = append(out, status)
		}
	}
	return out
}

// Directory is the slice of the backend the controller needs.
type Directory interface {
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateRentalStatus(ctx context.Context, id int64, status domain.RentalStatus) (*domain.Rental, error)
}

// Snapshot is the full dashboard data set from one refresh.
type Snapshot struct {
	Rentals   []domain.Rental
	Equipment []domain.Equipment
	Customers []domain.Customer
}

// Stats are the dashboard aggregates. They are always recomputed from the
// latest full snapshot, never patched incrementally, so they cannot drift.
type Stats struct {
	TotalRentals     int
	ActiveRentals    int
	PendingRentals   int
	OverdueRentals   int
	CompletedRevenue float64
	TotalEquipment   int
	TotalCustomers   int
}

// Controller owns the operator console's snapshot of rentals, equipment and
// customers and requests status transitions against the backend.
type Controller struct {
	directory Directory

	mu   sync.RWMutex
	snap Snapshot
}

func NewController(directory Directory) *Controller {
	return &Controller{directory: directory}
}

// Refresh re-fetches the full rental, equipment and customer collections.
// On any fetch failure the previous snapshot is kept unchanged.
func (c *Controller) Refresh(ctx context.Context) error {
	rentals, err := c.directory.ListRentals(ctx)
	if err != nil {
		return fmt.Errorf("fetching rentals: %w", err)
	}
	equipment, err := c.directory.ListEquipment(ctx)
	if err != nil {
		return fmt.Errorf("fetching equipment: %w", err)
	}
	customers, err := c.directory.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("fetching customers: %w", err)
	}

	c.mu.Lock()
	c.snap = Snapshot{Rentals: rentals, Equipment: equipment, Customers: customers}
	c.mu.Unlock()
	return nil
}

// Snapshot returns the current dashboard data set.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Stats recomputes the dashboard aggregates from the current snapshot.
func (c *Controller) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		TotalRentals:   len(c.snap.Rentals),
		TotalEquipment: len(c.snap.Equipment),
		TotalCustomers: len(c.snap.Customers),
	}
	for _, r := range c.snap.Rentals {
		switch r.Status {
		case domain.RentalStatusActive:
			stats.ActiveRentals++
		case domain.RentalStatusPending:
			stats.PendingRentals++
		case domain.RentalStatusOverdue:
			stats.OverdueRentals++
		case domain.RentalStatusCompleted:
			stats.CompletedRevenue += r.TotalAmount
		}
	}
	return stats
}

// RequestTransition asks the backend to move a rental to status. Terminal
// source statuses are refused locally without a request; everything else is
// sent and the backend decides — a rejection surfaces as an error and leaves
// the snapshot untouched. After an accepted transition the full snapshot is
// re-fetched so the aggregates stay consistent.
func (c *Controller) RequestTransition(ctx context.Context, rentalID int64, status domain.RentalStatus) (*domain.Rental, error) {
	if current, ok := c.currentStatus(rentalID); ok && IsTerminal(current) {
		return nil, fmt.Errorf("rental %d is %s: %w", rentalID, current, ErrTerminalStatus)
	}

	updated, err := c.directory.UpdateRentalStatus(ctx, rentalID, status)
	if err != nil {
		return nil, fmt.Errorf("updating rental %d status: %w", rentalID, err)
	}

	if err := c.Refresh(ctx); err != nil {
		// The transition itself succeeded; the stale snapshot heals on the
		// next refresh.
		logger.Warn("Dashboard refresh after transition failed", "rental_id", rentalID, "error", err)
	}
	return updated, nil
}

func (c *Controller) currentStatus(rentalID int64) (domain.RentalStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.snap.Rentals {
		if r.ID == rentalID {
			return r.Status, true
		}
	}
	return "", false
}
