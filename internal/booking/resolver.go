package booking

import (
	"context"
	"errors"
	"fmt"

	"medequip-console/internal/api"
	"medequip-console/internal/domain"
)

// Resolver performs idempotent lookup-or-create of a customer by email.
type Resolver struct {
	customers CustomerDirectory
}

func NewResolver(customers CustomerDirectory) *Resolver {
	return &Resolver{customers: customers}
}

// Resolve returns the customer for profile.Email, creating one from the
// supplied profile only when the lookup reports not-found. An existing
// record is returned as-is even if the supplied profile differs: the backend
// is the source of truth and this layer does not push corrections. Any
// lookup failure other than not-found propagates; so does a duplicate-email
// conflict from a racing creation, which is never retried here.
func (r *Resolver) Resolve(ctx context.Context, profile *domain.Customer) (*domain.Customer, error) {
	existing, err := r.customers.GetCustomerByEmail(ctx, profile.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("looking up customer %q: %w", profile.Email, err)
	}

	created, err := r.customers.CreateCustomer(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("creating customer %q: %w", profile.Email, err)
	}
	return created, nil
}
