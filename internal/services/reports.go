package services

import (
	"context"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// ReportsRepository defines the read-only access the report projections use.
type ReportsRepository interface {
	ListEquipment(ctx context.Context) ([]types.Equipment, error)
	ListReservations(ctx context.Context) ([]types.Reservation, error)
	ListTickets(ctx context.Context) ([]types.MaintenanceTicket, error)
}

// EquipmentReportRow is one line of the equipment report: the catalog entry
// plus how many ledger records reference it, in any state.
type EquipmentReportRow struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Available    bool   `json:"available"`
	Reservations int    `json:"reservations"`
}

type ReservationReportRow struct {
	UserEmail string                  `json:"user_email"`
	Equipment string                  `json:"equipment"`
	CreatedAt types.DateTime          `json:"created_at"`
	DueDate   types.Date              `json:"due_date"`
	Status    types.ReservationStatus `json:"status"`
}

type MaintenanceReportRow struct {
	Equipment string             `json:"equipment"`
	CreatedAt types.DateTime     `json:"created_at"`
	Problem   string             `json:"problem"`
	Status    types.TicketStatus `json:"status"`
}

// ReportsService builds read-only projections over the catalog, the ledger
// and the maintenance log. Rows follow insertion order of the underlying
// collections.
type ReportsService struct {
	repo ReportsRepository
}

func NewReportsService(repo ReportsRepository) *ReportsService {
	return &ReportsService{repo: repo}
}

func (s *ReportsService) EquipmentReport(ctx context.Context) ([]EquipmentReportRow, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(items))
	for _, record := range records {
		counts[record.EquipmentID]++
	}

	rows := make([]EquipmentReportRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, EquipmentReportRow{
			Name:         item.Name,
			Type:         item.Type,
			Available:    item.Available,
			Reservations: counts[item.ID],
		})
	}
	return rows, nil
}

func (s *ReportsService) ReservationReport(ctx context.Context) ([]ReservationReportRow, error) {
	records, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.equipmentNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ReservationReportRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, ReservationReportRow{
			UserEmail: record.UserEmail,
			Equipment: equipmentLabel(names, record.EquipmentID),
			CreatedAt: record.CreatedAt,
			DueDate:   record.DueDate,
			Status:    record.Status,
		})
	}
	return rows, nil
}

func (s *ReportsService) MaintenanceReport(ctx context.Context) ([]MaintenanceReportRow, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.equipmentNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]MaintenanceReportRow, 0, len(tickets))
	for _, ticket := range tickets {
		rows = append(rows, MaintenanceReportRow{
			Equipment: equipmentLabel(names, ticket.EquipmentID),
			CreatedAt: ticket.CreatedAt,
			Problem:   truncateProblem(ticket.Problem),
			Status:    ticket.Status,
		})
	}
	return rows, nil
}

func (s *ReportsService) equipmentNames(ctx context.Context) (map[int]string, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}

func equipmentLabel(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "unknown equipment"
}

// truncateProblem caps a problem description at 50 characters for report
// display, appending an ellipsis marker when cut.
func truncateProblem(problem string) string {
	runes := []rune(problem)
	if len(runes) <= 50 {
		return problem
	}
	return string(runes[:50]) + "..."
}
