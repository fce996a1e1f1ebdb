package domain

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

// Rental is created through the booking submitter and afterwards mutated only
// via status transitions; the client never deletes one.
//
// DailyRate and TotalAmount are snapshots taken by the backend at booking
// time. The client's own cost figure is only ever an estimate and is never
// written into a rental.
type Rental struct {
	ID               int64        `json:"id"`
	Customer         *Customer    `json:"customer,omitempty"`
	Equipment        *Equipment   `json:"equipment,omitempty"`
	StartDate        string       `json:"startDate"`
	EndDate          string       `json:"endDate"`
	ActualReturnDate string       `json:"actualReturnDate,omitempty"`
	Quantity         int          `json:"quantity"`
	DailyRate        float64      `json:"dailyRate"`
	TotalAmount      float64      `json:"totalAmount"`
	Status           RentalStatus `json:"status"`
	CreatedAt        string       `json:"createdAt,omitempty"`
	UpdatedAt        string       `json:"updatedAt,omitempty"`
	Notes            string       `json:"notes,omitempty"`
}

// RentalRequest is the creation payload sent to the backend. It references
// the already-resolved customer, never inline profile fields.
type RentalRequest struct {
	CustomerID  int64  `json:"customerId"`
	EquipmentID int64  `json:"equipmentId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// RentalDraft is the ephemeral client-side form state. It exists only until
// a booking succeeds or the form is abandoned; on submission failure the
// caller keeps it so the user can retry.
type RentalDraft struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string

	EquipmentID int64
	StartDate   string
	EndDate     string
	Quantity    int
	Notes       string
}
