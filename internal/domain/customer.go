package domain

// Customer's email is the natural external key used for resolution. The
// backend owns the record; the client never updates an existing customer
// from form input (see booking.Resolver).
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`

	// Populated only by the with-rentals endpoint.
	Rentals []Rental `json:"rentals,omitempty"`
}
