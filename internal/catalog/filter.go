package catalog

import (
	"strconv"
	"strings"

	"medequip-console/internal/domain"
)

// Filter is a client-side filter specification. All predicates are optional.
// Price bounds are kept as raw input strings; unparseable values are ignored
// rather than excluding every item.
type Filter struct {
	Text         string
	CategoryName string
	MinPrice     string
	MaxPrice     string
}

// Apply returns the items matching every predicate in f, preserving the
// input order. Pure and linear in the catalog size, so it is cheap enough to
// run on every keystroke without debouncing.
func Apply(items []domain.Equipment, f Filter) []domain.Equipment {
	text := strings.ToLower(f.Text)
	minPrice, hasMin := parsePrice(f.MinPrice)
	maxPrice, hasMax := parsePrice(f.MaxPrice)

	out := make([]domain.Equipment, 0, len(items))
	for _, item := range items {
		if text != "" && !matchesText(item, text) {
			continue
		}
		if f.CategoryName != "" {
			if item.Category == nil || !strings.EqualFold(item.Category.Name, f.CategoryName) {
				continue
			}
		}
		if hasMin && item.DailyPrice < minPrice {
			continue
		}
		if hasMax && item.DailyPrice > maxPrice {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesText(item domain.Equipment, text string) bool {
	return strings.Contains(strings.ToLower(item.Name), text) ||
		strings.Contains(strings.ToLower(item.Description), text) ||
		strings.Contains(strings.ToLower(item.Manufacturer), text) ||
		strings.Contains(strings.ToLower(item.Model), text)
}

func parsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
