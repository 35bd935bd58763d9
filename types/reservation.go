package types

// ReservationStatus is the lifecycle state of a reservation record.
type ReservationStatus string

// Reservation lifecycle states. Records are created as reserved or loaned;
// returned and cancelled are terminal.
const (
	StatusReserved  ReservationStatus = "reserved"
	StatusLoaned    ReservationStatus = "loaned"
	StatusReturned  ReservationStatus = "returned"
	StatusCancelled ReservationStatus = "cancelled"
)

// Active reports whether the status still holds the equipment, i.e. the
// record counts toward the at-most-one-active-record-per-item invariant.
func (s ReservationStatus) Active() bool {
	return s == StatusReserved || s == StatusLoaned
}

// Reservation represents a reservation or loan record in the ledger.
type Reservation struct {
	// ID is the sequential identifier assigned at creation.
	ID int `json:"id" db:"id"`

	// EquipmentID references the equipment item the record holds.
	EquipmentID int `json:"equipment_id" db:"equipment_id"`

	// UserEmail identifies the owning user.
	UserEmail string `json:"user_email" db:"user_email"`

	// CreatedAt is the timestamp at which the record was created.
	CreatedAt DateTime `json:"created_at" db:"created_at"`

	// DueDate is the date by which the item must be returned.
	DueDate Date `json:"due_date" db:"due_date"`

	// Status is the current lifecycle state.
	Status ReservationStatus `json:"status" db:"status"`

	// ActualReturnDate is set when a loan is returned; nil otherwise.
	ActualReturnDate *Date `json:"actual_return_date,omitempty" db:"actual_return_date"`
}
