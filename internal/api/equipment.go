package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"medequip-console/internal/domain"
)

func (c *Client) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	var out []domain.Equipment
	if err := c.get(ctx, "/equipment", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAvailableEquipment(ctx context.Context) ([]domain.Equipment, error) {
	var out []domain.Equipment
	if err := c.get(ctx, "/equipment/available", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.get(ctx, fmt.Sprintf("/equipment/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEquipmentWithCategory fetches an item with its owning category inlined.
// This is the snapshot the rental form works from.
func (c *Client) GetEquipmentWithCategory(ctx context.Context, id int64) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.get(ctx, fmt.Sprintf("/equipment/%d/with-category", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEquipmentByCategory(ctx context.Context, categoryID int64) ([]domain.Equipment, error) {
	var out []domain.Equipment
	if err := c.get(ctx, fmt.Sprintf("/equipment/category/%d", categoryID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAvailableEquipmentByCategory(ctx context.Context, categoryID int64) ([]domain.Equipment, error) {
	var out []domain.Equipment
	if err := c.get(ctx, fmt.Sprintf("/equipment/category/%d/available", categoryID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchEquipment(ctx context.Context, keyword string) ([]domain.Equipment, error) {
	query := url.Values{"keyword": {keyword}}
	var out []domain.Equipment
	if err := c.get(ctx, "/equipment/search", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEquipmentByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.Equipment, error) {
	query := url.Values{
		"minPrice": {strconv.FormatFloat(minPrice, 'f', -1, 64)},
		"maxPrice": {strconv.FormatFloat(maxPrice, 'f', -1, 64)},
	}
	var out []domain.Equipment
	if err := c.get(ctx, "/equipment/price-range", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEquipmentByStatus(ctx context.Context, status domain.EquipmentStatus) ([]domain.Equipment, error) {
	var out []domain.Equipment
	if err := c.get(ctx, fmt.Sprintf("/equipment/status/%s", status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEquipment(ctx context.Context, equipment *domain.Equipment) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.post(ctx, "/equipment", equipment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEquipment(ctx context.Context, id int64, equipment *domain.Equipment) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.put(ctx, fmt.Sprintf("/equipment/%d", id), equipment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEquipment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/equipment/%d", id))
}

// CheckEquipmentAvailability asks whether the item currently has at least
// quantity units on hand, ignoring any rental period.
func (c *Client) CheckEquipmentAvailability(ctx context.Context, id int64, quantity int) (bool, error) {
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	var out bool
	if err := c.get(ctx, fmt.Sprintf("/equipment/%d/availability", id), query, &out); err != nil {
		return false, err
	}
	return out, nil
}

// UploadEquipmentImage attaches an image file to an equipment item. The
// backend updates the item's image reference and returns the updated record.
func (c *Client) UploadEquipmentImage(ctx context.Context, id int64, filename string, file io.Reader) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.upload(ctx, fmt.Sprintf("/equipment/%d/image", id), filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
