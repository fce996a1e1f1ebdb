package api

import (
	"context"
	"fmt"

	"medequip-console/internal/domain"
)

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var out domain.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCategoryWithEquipment(ctx context.Context, id int64) (*domain.Category, error) {
	var out domain.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d/with-equipment", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.post(ctx, "/categories", category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, category *domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.put(ctx, fmt.Sprintf("/categories/%d", id), category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}
