package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"medequip-console/internal/domain"
)

func (c *Client) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	var out []domain.Rental
	if err := c.get(ctx, "/rentals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	var out domain.Rental
	if err := c.get(ctx, fmt.Sprintf("/rentals/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRentalWithDetails(ctx context.Context, id int64) (*domain.Rental, error) {
	var out domain.Rental
	if err := c.get(ctx, fmt.Sprintf("/rentals/%d/details", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRentalsByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	var out []domain.Rental
	if err := c.get(ctx, fmt.Sprintf("/rentals/customer/%d", customerID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListRentalsByEquipment(ctx context.Context, equipmentID int64) ([]domain.Rental, error) {
	var out []domain.Rental
	if err := c.get(ctx, fmt.Sprintf("/rentals/equipment/%d", equipmentID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListRentalsByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	var out []domain.Rental
	if err := c.get(ctx, fmt.Sprintf("/rentals/status/%s", status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListOverdueRentals(ctx context.Context) ([]domain.Rental, error) {
	var out []domain.Rental
	if err := c.get(ctx, "/rentals/overdue", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListActiveRentalsOnDate(ctx context.Context, date string) ([]domain.Rental, error) {
	query := url.Values{"date": {date}}
	var out []domain.Rental
	if err := c.get(ctx, "/rentals/active", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRental submits a rental creation request. The backend snapshots the
// daily rate and computes the authoritative total amount.
func (c *Client) CreateRental(ctx context.Context, req *domain.RentalRequest) (*domain.Rental, error) {
	var out domain.Rental
	if err := c.post(ctx, "/rentals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRental(ctx context.Context, id int64, rental *domain.Rental) (*domain.Rental, error) {
	var out domain.Rental
	if err := c.put(ctx, fmt.Sprintf("/rentals/%d", id), rental, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRentalStatus requests a status transition. The backend is the
// authority; an illegal transition comes back as api.ErrConflict.
func (c *Client) UpdateRentalStatus(ctx context.Context, id int64, status domain.RentalStatus) (*domain.Rental, error) {
	query := url.Values{"status": {string(status)}}
	var out domain.Rental
	if err := c.patch(ctx, fmt.Sprintf("/rentals/%d/status", id), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRental(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/rentals/%d", id))
}

// CheckRentalAvailability reports whether quantity units of the equipment are
// free over [startDate, endDate].
func (c *Client) CheckRentalAvailability(ctx context.Context, equipmentID int64, startDate, endDate string, quantity int) (bool, error) {
	query := url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
		"quantity":  {strconv.Itoa(quantity)},
	}
	var out bool
	if err := c.get(ctx, fmt.Sprintf("/rentals/equipment/%d/availability", equipmentID), query, &out); err != nil {
		return false, err
	}
	return out, nil
}

// AvailableQuantityForPeriod is one half of the quote oracle: how many units
// of the equipment are free over the period, after overlapping rentals.
func (c *Client) AvailableQuantityForPeriod(ctx context.Context, equipmentID int64, startDate, endDate string) (int, error) {
	query := url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
	}
	var out int
	if err := c.get(ctx, fmt.Sprintf("/rentals/equipment/%d/available-quantity", equipmentID), query, &out); err != nil {
		return 0, err
	}
	return out, nil
}

// CalculateCost is the other half of the quote oracle: the backend-priced
// total for the period and quantity. The result is an estimate until a
// rental is actually created.
func (c *Client) CalculateCost(ctx context.Context, equipmentID int64, startDate, endDate string, quantity int) (float64, error) {
	query := url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
		"quantity":  {strconv.Itoa(quantity)},
	}
	var out float64
	if err := c.get(ctx, fmt.Sprintf("/rentals/equipment/%d/cost", equipmentID), query, &out); err != nil {
		return 0, err
	}
	return out, nil
}
