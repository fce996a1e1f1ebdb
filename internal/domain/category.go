package domain

// Category is referenced, never owned, by equipment items.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Populated only by the with-equipment endpoint.
	Equipment []Equipment `json:"equipment,omitempty"`
}
