package types

// Equipment represents a loanable item in the main catalog.
type Equipment struct {
	// ID is the sequential identifier assigned at registration.
	ID int `json:"id" db:"id"`

	// Name is the display name of the item, e.g. "Projetor Epson".
	Name string `json:"name" db:"name"`

	// Type is a free-form category label, e.g. "projector".
	Type string `json:"type" db:"type"`

	// Quantity is the number of physical units held. Always >= 0.
	Quantity int `json:"quantity" db:"quantity"`

	// Description is optional free text.
	Description string `json:"description" db:"description"`

	// Available reports whether the item can currently be reserved or
	// loaned. Driven by the reservation ledger and the maintenance log.
	Available bool `json:"available" db:"available"`

	// UnderMaintenance is set while an open maintenance ticket exists
	// for the item.
	UnderMaintenance bool `json:"under_maintenance" db:"under_maintenance"`

	// CreatedAt is the timestamp at which the item was registered.
	CreatedAt DateTime `json:"created_at" db:"created_at"`
}

// SupportResource is a catalog item in the independent support-resource
// collection. Same shape as Equipment minus the maintenance flag; support
// resources are not referenced by reservations.
type SupportResource struct {
	ID          int      `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Type        string   `json:"type" db:"type"`
	Quantity    int      `json:"quantity" db:"quantity"`
	Description string   `json:"description" db:"description"`
	Available   bool     `json:"available" db:"available"`
	CreatedAt   DateTime `json:"created_at" db:"created_at"`
}
