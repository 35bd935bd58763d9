package types

// TicketStatus is the lifecycle state of a maintenance ticket.
type TicketStatus string

const (
	TicketPending  TicketStatus = "pending"
	TicketResolved TicketStatus = "resolved"
)

// MaintenanceTicket records a reported problem with an equipment item.
// Opening a ticket forces the equipment out of circulation until an
// administrator resolves it.
type MaintenanceTicket struct {
	ID          int          `json:"id" db:"id"`
	EquipmentID int          `json:"equipment_id" db:"equipment_id"`
	CreatedAt   DateTime     `json:"created_at" db:"created_at"`
	Problem     string       `json:"problem" db:"problem"`
	ReportedBy  string       `json:"reported_by" db:"reported_by"`
	Status      TicketStatus `json:"status" db:"status"`
}
