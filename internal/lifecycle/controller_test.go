package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medequip-console/internal/api"
	"medequip-console/internal/api/apitest"
	"medequip-console/internal/domain"
	"medequip-console/internal/lifecycle"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to domain.RentalStatus
		want     bool
	}{
		{domain.RentalStatusPending, domain.RentalStatusConfirmed, true},
		{domain.RentalStatusPending, domain.RentalStatusCancelled, true},
		{domain.RentalStatusPending, domain.RentalStatusActive, false},
		{domain.RentalStatusConfirmed, domain.RentalStatusActive, true},
		{domain.RentalStatusConfirmed, domain.RentalStatusCompleted, false},
		{domain.RentalStatusActive, domain.RentalStatusCompleted, true},
		{domain.RentalStatusActive, domain.RentalStatusCancelled, true},
		{domain.RentalStatusActive, domain.RentalStatusPending, false},
		{domain.RentalStatusOverdue, domain.RentalStatusCompleted, true},
		{domain.RentalStatusOverdue, domain.RentalStatusCancelled, true},
		{domain.RentalStatusCompleted, domain.RentalStatusActive, false},
		{domain.RentalStatusCancelled, domain.RentalStatusPending, false},
		// OVERDUE is backend-driven; no operator edge leads into it.
		{domain.RentalStatusActive, domain.RentalStatusOverdue, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lifecycle.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, lifecycle.IsTerminal(domain.RentalStatusCompleted))
	assert.True(t, lifecycle.IsTerminal(domain.RentalStatusCancelled))
	assert.False(t, lifecycle.IsTerminal(domain.RentalStatusPending))
	assert.False(t, lifecycle.IsTerminal(domain.RentalStatusOverdue))
}

func TestTransitionOptions(t *testing.T) {
	t.Run("terminal statuses offer nothing", func(t *testing.T) {
		assert.Nil(t, lifecycle.TransitionOptions(domain.RentalStatusCompleted))
		assert.Nil(t, lifecycle.TransitionOptions(domain.RentalStatusCancelled))
	})

	t.Run("non-terminal offers every operator status but the current one", func(t *testing.T) {
		opts := lifecycle.TransitionOptions(domain.RentalStatusPending)
		assert.ElementsMatch(t, []domain.RentalStatus{
			domain.RentalStatusConfirmed,
			domain.RentalStatusActive,
			domain.RentalStatusCompleted,
			domain.RentalStatusCancelled,
		}, opts)
		assert.NotContains(t, opts, domain.RentalStatusOverdue)
	})

	t.Run("overdue rentals still get the full menu", func(t *testing.T) {
		opts := lifecycle.TransitionOptions(domain.RentalStatusOverdue)
		assert.Len(t, opts, 5)
		assert.NotContains(t, opts, domain.RentalStatusOverdue)
	})
}

func newControllerFixture(t *testing.T) (*apitest.Server, *lifecycle.Controller) {
	t.Helper()
	server := apitest.NewServer()
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL(), 5*time.Second)
	return server, lifecycle.NewController(client)
}

func TestController_StatsRecomputedFromSnapshot(t *testing.T) {
	server, controller := newControllerFixture(t)
	ctx := context.Background()

	server.AddEquipment(domain.Equipment{Name: "Ventilator", DailyPrice: 120, TotalQuantity: 3})
	server.AddCustomer(domain.Customer{FirstName: "Ada", Email: "ada@example.com"})
	server.AddRental(domain.Rental{Status: domain.RentalStatusActive, TotalAmount: 100})
	server.AddRental(domain.Rental{Status: domain.RentalStatusPending, TotalAmount: 50})
	server.AddRental(domain.Rental{Status: domain.RentalStatusOverdue, TotalAmount: 75})
	server.AddRental(domain.Rental{Status: domain.RentalStatusCompleted, TotalAmount: 200})
	server.AddRental(domain.Rental{Status: domain.RentalStatusCompleted, TotalAmount: 300})
	server.AddRental(domain.Rental{Status: domain.RentalStatusCancelled, TotalAmount: 999})

	require.NoError(t, controller.Refresh(ctx))

	stats := controller.Stats()
	assert.Equal(t, 6, stats.TotalRentals)
	assert.Equal(t, 1, stats.ActiveRentals)
	assert.Equal(t, 1, stats.PendingRentals)
	assert.Equal(t, 1, stats.OverdueRentals)
	assert.Equal(t, 500.0, stats.CompletedRevenue, "cancelled rentals earn nothing")
	assert.Equal(t, 1, stats.TotalEquipment)
	assert.Equal(t, 1, stats.TotalCustomers)
}

func TestController_TransitionRefreshesSnapshot(t *testing.T) {
	server, controller := newControllerFixture(t)
	ctx := context.Background()

	rental := server.AddRental(domain.Rental{Status: domain.RentalStatusPending, TotalAmount: 80})
	require.NoError(t, controller.Refresh(ctx))
	assert.Equal(t, 1, controller.Stats().PendingRentals)

	updated, err := controller.RequestTransition(ctx, rental.ID, domain.RentalStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusConfirmed, updated.Status)

	// The snapshot was re-fetched, so the aggregates moved with it.
	stats := controller.Stats()
	assert.Equal(t, 0, stats.PendingRentals)
	assert.Equal(t, domain.RentalStatusConfirmed, controller.Snapshot().Rentals[0].Status)
}

func TestController_TerminalRentalRefusedLocally(t *testing.T) {
	server, controller := newControllerFixture(t)
	ctx := context.Background()

	rental := server.AddRental(domain.Rental{Status: domain.RentalStatusCompleted, TotalAmount: 150})
	require.NoError(t, controller.Refresh(ctx))

	updated, err := controller.RequestTransition(ctx, rental.ID, domain.RentalStatusActive)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, lifecycle.ErrTerminalStatus)

	// Nothing was sent: the backend still holds the rental as COMPLETED with
	// no new updatedAt.
	assert.Equal(t, domain.RentalStatusCompleted, server.Rental(rental.ID).Status)
}

func TestController_BackendRejectionLeavesSnapshotUntouched(t *testing.T) {
	server, controller := newControllerFixture(t)
	ctx := context.Background()

	// A rental the console has not yet seen as terminal — say a stale snapshot
	// taken before another operator completed it.
	rental := server.AddRental(domain.Rental{Status: domain.RentalStatusPending, TotalAmount: 60})
	require.NoError(t, controller.Refresh(ctx))

	// PENDING -> COMPLETED is not a legal edge; the backend rejects it.
	updated, err := controller.RequestTransition(ctx, rental.ID, domain.RentalStatusCompleted)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, api.ErrConflict)

	// Local state still shows the rental exactly as the last good snapshot did.
	snap := controller.Snapshot()
	require.Len(t, snap.Rentals, 1)
	assert.Equal(t, domain.RentalStatusPending, snap.Rentals[0].Status)
	assert.Equal(t, domain.RentalStatusPending, server.Rental(rental.ID).Status)
}

func TestController_RefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	server := apitest.NewServer()
	client := api.NewClient(server.URL(), 2*time.Second)
	controller := lifecycle.NewController(client)
	ctx := context.Background()

	server.AddRental(domain.Rental{Status: domain.RentalStatusActive, TotalAmount: 40})
	require.NoError(t, controller.Refresh(ctx))
	assert.Equal(t, 1, controller.Stats().ActiveRentals)

	server.Close()
	assert.Error(t, controller.Refresh(ctx))

	// The last good data set survives the outage.
	assert.Equal(t, 1, controller.Stats().ActiveRentals)
	assert.Len(t, controller.Snapshot().Rentals, 1)
}
