// Package booking holds the client-side orchestration for creating a rental:
// resolving the customer by email, keeping the quote (availability and cost
// estimate) in sync with form input, and submitting the validated draft.
package booking

import (
	"context"

	"medequip-console/internal/domain"
)

// CustomerDirectory is the slice of the backend the resolver needs.
type CustomerDirectory interface {
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// QuoteOracle answers the two authoritative quote queries. Both are
// idempotent, side-effect-free reads owned by the backend.
type QuoteOracle interface {
	AvailableQuantityForPeriod(ctx context.Context, equipmentID int64, startDate, endDate string) (int, error)
	CalculateCost(ctx context.Context, equipmentID int64, startDate, endDate string, quantity int) (float64, error)
}

// RentalCreator creates rentals on the backend.
type RentalCreator interface {
	CreateRental(ctx context.Context, req *domain.RentalRequest) (*domain.Rental, error)
}
