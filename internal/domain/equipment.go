package domain

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusRented      EquipmentStatus = "RENTED"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentStatusRetired     EquipmentStatus = "RETIRED"
)

// Equipment is an immutable snapshot of a catalog item as returned by the
// backend. The client never mutates it; a fresh fetch replaces the snapshot.
type Equipment struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Model             string          `json:"model"`
	Manufacturer      string          `json:"manufacturer"`
	DailyPrice        float64         `json:"dailyPrice"`
	AvailableQuantity int             `json:"availableQuantity"`
	TotalQuantity     int             `json:"totalQuantity"`
	Status            EquipmentStatus `json:"status"`
	ImageURL          string          `json:"imageUrl,omitempty"`
	Category          *Category       `json:"category,omitempty"`
}
