package booking_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medequip-console/internal/domain"
)

// MockCustomerDirectory
type MockCustomerDirectory struct {
	mock.Mock
}

func (m *MockCustomerDirectory) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerDirectory) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockRentalCreator
type MockRentalCreator struct {
	mock.Mock
}

func (m *MockRentalCreator) CreateRental(ctx context.Context, req *domain.RentalRequest) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// scriptedOracle lets a test hold quote queries in flight and answer them in
// any order, which is exactly what the stale-response tests need.
type scriptedOracle struct {
	availabilityCalls chan *availabilityCall
	costCalls         chan *costCall
}

type availabilityCall struct {
	equipmentID        int64
	startDate, endDate string
	reply              chan availabilityResult
}

type availabilityResult struct {
	qty int
	err error
}

type costCall struct {
	equipmentID        int64
	startDate, endDate string
	quantity           int
	reply              chan costResult
}

type costResult struct {
	cost float64
	err  error
}

func newScriptedOracle() *scriptedOracle {
	return &scriptedOracle{
		availabilityCalls: make(chan *availabilityCall, 16),
		costCalls:         make(chan *costCall, 16),
	}
}

func (o *scriptedOracle) AvailableQuantityForPeriod(ctx context.Context, equipmentID int64, startDate, endDate string) (int, error) {
	call := &availabilityCall{
		equipmentID: equipmentID,
		startDate:   startDate,
		endDate:     endDate,
		reply:       make(chan availabilityResult, 1),
	}
	o.availabilityCalls <- call
	res := <-call.reply
	return res.qty, res.err
}

func (o *scriptedOracle) CalculateCost(ctx context.Context, equipmentID int64, startDate, endDate string, quantity int) (float64, error) {
	call := &costCall{
		equipmentID: equipmentID,
		startDate:   startDate,
		endDate:     endDate,
		quantity:    quantity,
		reply:       make(chan costResult, 1),
	}
	o.costCalls <- call
	res := <-call.reply
	return res.cost, res.err
}
