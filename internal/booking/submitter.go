package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medequip-console/internal/domain"
	"medequip-console/internal/logger"
)

const dateLayout = "2006-01-02"

// Submitter turns a validated rental draft into a rental: it resolves the
// customer and submits the creation request.
type Submitter struct {
	resolver *Resolver
	rentals  RentalCreator
}

func NewSubmitter(customers CustomerDirectory, rentals RentalCreator) *Submitter {
	return &Submitter{
		resolver: NewResolver(customers),
		rentals:  rentals,
	}
}

// Submit validates the draft, resolves the customer, and creates the rental.
// The draft is never mutated: on failure the caller still holds it and can
// retry after fixing the reported problem. Failure kinds stay
// distinguishable — *ValidationError before any network call, api.ErrConflict
// and api.ErrNotFound wrapped from the backend, anything else transient.
func (s *Submitter) Submit(ctx context.Context, draft *domain.RentalDraft) (*domain.Rental, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	customer, err := s.resolver.Resolve(ctx, &domain.Customer{
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Address:   draft.Address,
		City:      draft.City,
		State:     draft.State,
		ZipCode:   draft.ZipCode,
	})
	if err != nil {
		return nil, err
	}

	rental, err := s.rentals.CreateRental(ctx, &domain.RentalRequest{
		CustomerID:  customer.ID,
		EquipmentID: draft.EquipmentID,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		Quantity:    draft.Quantity,
		Notes:       draft.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("creating rental: %w", err)
	}

	logger.Info("Rental booked",
		"rental_id", rental.ID,
		"customer_id", customer.ID,
		"equipment_id", draft.EquipmentID,
		"start_date", draft.StartDate,
		"end_date", draft.EndDate,
	)
	return rental, nil
}

// ValidateDraft checks the draft before any network call. It returns a
// *ValidationError naming the first offending field.
func ValidateDraft(draft *domain.RentalDraft) error {
	required := []struct {
		field string
		value string
	}{
		{"firstName", draft.FirstName},
		{"lastName", draft.LastName},
		{"email", draft.Email},
		{"phone", draft.Phone},
		{"startDate", draft.StartDate},
		{"endDate", draft.EndDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Reason: "required"}
		}
	}

	if !strings.Contains(draft.Email, "@") {
		return &ValidationError{Field: "email", Reason: "not a valid email address"}
	}
	if draft.EquipmentID <= 0 {
		return &ValidationError{Field: "equipmentId", Reason: "required"}
	}

	start, err := time.Parse(dateLayout, draft.StartDate)
	if err != nil {
		return &ValidationError{Field: "startDate", Reason: "must be a YYYY-MM-DD date"}
	}
	end, err := time.Parse(dateLayout, draft.EndDate)
	if err != nil {
		return &ValidationError{Field: "endDate", Reason: "must be a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "endDate", Reason: "must not be before start date"}
	}

	if draft.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	return nil
}
