package api

import (
	"context"
	"fmt"
	"net/url"

	"medequip-console/internal/domain"
)

func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := c.get(ctx, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.get(ctx, fmt.Sprintf("/customers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCustomerWithRentals(ctx context.Context, id int64) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.get(ctx, fmt.Sprintf("/customers/%d/with-rentals", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomerByEmail looks a customer up by their email address. A missing
// customer surfaces as api.ErrNotFound; the resolver relies on that to
// distinguish "create one" from a transport failure.
func (c *Client) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.get(ctx, "/customers/email/"+url.PathEscape(email), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchCustomers(ctx context.Context, name string) ([]domain.Customer, error) {
	query := url.Values{"name": {name}}
	var out []domain.Customer
	if err := c.get(ctx, "/customers/search", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.post(ctx, "/customers", customer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, customer *domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.put(ctx, fmt.Sprintf("/customers/%d", id), customer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%d", id))
}
