package booking_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medequip-console/internal/api"
	"medequip-console/internal/booking"
	"medequip-console/internal/domain"
)

func TestResolver_ExistingCustomerWins(t *testing.T) {
	customers := new(MockCustomerDirectory)
	resolver := booking.NewResolver(customers)
	ctx := context.Background()

	existing := &domain.Customer{ID: 7, FirstName: "Ada", Email: "ada@example.com", Phone: "555-0100"}
	customers.On("GetCustomerByEmail", ctx, "ada@example.com").Return(existing, nil)

	// The supplied profile differs from the stored record; the stored record
	// is returned untouched and no update or create goes out.
	got, err := resolver.Resolve(ctx, &domain.Customer{FirstName: "Adaline", Email: "ada@example.com", Phone: "555-9999"})
	assert.NoError(t, err)
	assert.Equal(t, existing, got)
	customers.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestResolver_NotFoundCreates(t *testing.T) {
	customers := new(MockCustomerDirectory)
	resolver := booking.NewResolver(customers)
	ctx := context.Background()

	profile := &domain.Customer{FirstName: "Ada", Email: "ada@example.com", Phone: "555-0100"}
	created := &domain.Customer{ID: 12, FirstName: "Ada", Email: "ada@example.com", Phone: "555-0100"}

	customers.On("GetCustomerByEmail", ctx, "ada@example.com").
		Return(nil, &api.Error{StatusCode: http.StatusNotFound, Message: "customer not found"})
	customers.On("CreateCustomer", ctx, profile).Return(created, nil)

	got, err := resolver.Resolve(ctx, profile)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), got.ID)
	customers.AssertNumberOfCalls(t, "CreateCustomer", 1)
}

func TestResolver_TransientLookupFailureDoesNotCreate(t *testing.T) {
	customers := new(MockCustomerDirectory)
	resolver := booking.NewResolver(customers)
	ctx := context.Background()

	customers.On("GetCustomerByEmail", ctx, "ada@example.com").
		Return(nil, errors.New("connection reset"))

	got, err := resolver.Resolve(ctx, &domain.Customer{Email: "ada@example.com"})
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.NotErrorIs(t, err, api.ErrNotFound)
	customers.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestResolver_CreationConflictPropagates(t *testing.T) {
	customers := new(MockCustomerDirectory)
	resolver := booking.NewResolver(customers)
	ctx := context.Background()

	// Another client created the same email between our lookup and create.
	customers.On("GetCustomerByEmail", ctx, "ada@example.com").
		Return(nil, &api.Error{StatusCode: http.StatusNotFound})
	customers.On("CreateCustomer", ctx, mock.AnythingOfType("*domain.Customer")).
		Return(nil, &api.Error{StatusCode: http.StatusConflict, Message: "customer with email ada@example.com already exists"})

	got, err := resolver.Resolve(ctx, &domain.Customer{Email: "ada@example.com"})
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, api.ErrConflict)
	// Conflicts are never retried automatically.
	customers.AssertNumberOfCalls(t, "CreateCustomer", 1)
}
