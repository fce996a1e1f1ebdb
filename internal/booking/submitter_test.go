package booking_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medequip-console/internal/api"
	"medequip-console/internal/api/apitest"
	"medequip-console/internal/booking"
	"medequip-console/internal/domain"
)

func validDraft() *domain.RentalDraft {
	return &domain.RentalDraft{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		EquipmentID: 1,
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-03",
		Quantity:    1,
	}
}

func TestValidateDraft(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.RentalDraft)
		field  string
	}{
		{"missing first name", func(d *domain.RentalDraft) { d.FirstName = " " }, "firstName"},
		{"missing last name", func(d *domain.RentalDraft) { d.LastName = "" }, "lastName"},
		{"missing email", func(d *domain.RentalDraft) { d.Email = "" }, "email"},
		{"bad email", func(d *domain.RentalDraft) { d.Email = "not-an-email" }, "email"},
		{"missing phone", func(d *domain.RentalDraft) { d.Phone = "" }, "phone"},
		{"missing equipment", func(d *domain.RentalDraft) { d.EquipmentID = 0 }, "equipmentId"},
		{"bad start date", func(d *domain.RentalDraft) { d.StartDate = "06/01/2024" }, "startDate"},
		{"bad end date", func(d *domain.RentalDraft) { d.EndDate = "tomorrow" }, "endDate"},
		{"end before start", func(d *domain.RentalDraft) { d.EndDate = "2024-05-30" }, "endDate"},
		{"zero quantity", func(d *domain.RentalDraft) { d.Quantity = 0 }, "quantity"},
		{"negative quantity", func(d *domain.RentalDraft) { d.Quantity = -2 }, "quantity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(draft)

			err := booking.ValidateDraft(draft)
			require.Error(t, err)
			var verr *booking.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, booking.ValidateDraft(validDraft()))
	})

	t.Run("same-day rental is valid", func(t *testing.T) {
		draft := validDraft()
		draft.EndDate = draft.StartDate
		assert.NoError(t, booking.ValidateDraft(draft))
	})
}

func TestSubmitter_ValidationBlocksBeforeNetwork(t *testing.T) {
	customers := new(MockCustomerDirectory)
	rentals := new(MockRentalCreator)
	submitter := booking.NewSubmitter(customers, rentals)

	draft := validDraft()
	draft.Quantity = 0

	rental, err := submitter.Submit(context.Background(), draft)
	assert.Nil(t, rental)
	var verr *booking.ValidationError
	assert.ErrorAs(t, err, &verr)
	// No network call of any kind happened.
	customers.AssertExpectations(t)
	rentals.AssertExpectations(t)
}

func TestSubmitter_ResolvesThenCreates(t *testing.T) {
	customers := new(MockCustomerDirectory)
	rentals := new(MockRentalCreator)
	submitter := booking.NewSubmitter(customers, rentals)
	ctx := context.Background()

	draft := validDraft()
	resolved := &domain.Customer{ID: 42, Email: draft.Email}
	created := &domain.Rental{ID: 9, Status: domain.RentalStatusPending, TotalAmount: 750}

	customers.On("GetCustomerByEmail", ctx, draft.Email).Return(resolved, nil)
	rentals.On("CreateRental", ctx, &domain.RentalRequest{
		CustomerID:  42,
		EquipmentID: draft.EquipmentID,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		Quantity:    draft.Quantity,
	}).Return(created, nil)

	rental, err := submitter.Submit(ctx, draft)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), rental.ID)
	assert.Equal(t, domain.RentalStatusPending, rental.Status)
}

func TestSubmitter_BackendConflictSurfacesAndPreservesDraft(t *testing.T) {
	customers := new(MockCustomerDirectory)
	rentals := new(MockRentalCreator)
	submitter := booking.NewSubmitter(customers, rentals)
	ctx := context.Background()

	draft := validDraft()
	before := *draft

	customers.On("GetCustomerByEmail", ctx, draft.Email).
		Return(&domain.Customer{ID: 42, Email: draft.Email}, nil)
	rentals.On("CreateRental", ctx, &domain.RentalRequest{
		CustomerID:  42,
		EquipmentID: draft.EquipmentID,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		Quantity:    draft.Quantity,
	}).Return(nil, &api.Error{StatusCode: http.StatusConflict, Message: "equipment no longer available"})

	rental, err := submitter.Submit(ctx, draft)
	assert.Nil(t, rental)
	assert.ErrorIs(t, err, api.ErrConflict)
	assert.Equal(t, before, *draft, "draft must survive a failed submission")
}

// End-to-end against the fake backend: submitting twice with the same email
// creates exactly one customer and two rentals.
func TestSubmitter_DeduplicatesCustomerAcrossBookings(t *testing.T) {
	server := apitest.NewServer()
	defer server.Close()

	equipment := server.AddEquipment(domain.Equipment{
		Name:          "Infusion Pump",
		DailyPrice:    30,
		TotalQuantity: 10,
		Status:        domain.EquipmentStatusAvailable,
	})

	client := api.NewClient(server.URL(), 5*time.Second)
	submitter := booking.NewSubmitter(client, client)
	ctx := context.Background()

	draft := validDraft()
	draft.Email = "a@x.com"
	draft.EquipmentID = equipment.ID

	first, err := submitter.Submit(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, 1, server.CustomerCreates)
	assert.Equal(t, 1, server.RentalCount())

	second, err := submitter.Submit(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, 1, server.CustomerCount(), "resubmission must not create a second customer")
	assert.Equal(t, 2, server.RentalCount())
	assert.Equal(t, first.Customer.ID, second.Customer.ID)
}
