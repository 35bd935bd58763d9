package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// MaintenanceRepository defines the persistence the maintenance log needs.
type MaintenanceRepository interface {
	GetEquipmentByID(ctx context.Context, id int) (types.Equipment, error)
	UpdateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error)
	CreateTicket(ctx context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error)
	GetTicketByID(ctx context.Context, id int) (types.MaintenanceTicket, error)
	ListTickets(ctx context.Context) ([]types.MaintenanceTicket, error)
	UpdateTicket(ctx context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error)
	ListActiveReservationsByEquipment(ctx context.Context, equipmentID int) ([]types.Reservation, error)
}

// MaintenanceService owns the maintenance ticket log and the support
// channel. Reporting a problem pulls the equipment out of circulation;
// resolving the ticket puts it back unless an active reservation holds it.
type MaintenanceService struct {
	repo           MaintenanceRepository
	notifier       Notifier
	supportAddress string
	now            func() time.Time
}

func NewMaintenanceService(repo MaintenanceRepository, notifier Notifier, supportAddress string) *MaintenanceService {
	return &MaintenanceService{
		repo:           repo,
		notifier:       notifier,
		supportAddress: supportAddress,
		now:            time.Now,
	}
}

// Report opens a ticket for the equipment and flags it as under
// maintenance and unavailable.
func (s *MaintenanceService) Report(ctx context.Context, equipmentID int, problem, reportedBy string) (types.MaintenanceTicket, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return types.MaintenanceTicket{}, fmt.Errorf("%w: problem description is required", store.ErrValidation)
	}

	item, err := s.repo.GetEquipmentByID(ctx, equipmentID)
	if err != nil {
		return types.MaintenanceTicket{}, err
	}

	ticket, err := s.repo.CreateTicket(ctx, types.MaintenanceTicket{
		EquipmentID: equipmentID,
		CreatedAt:   types.DateTimeOf(s.now()),
		Problem:     problem,
		ReportedBy:  reportedBy,
		Status:      types.TicketPending,
	})
	if err != nil {
		return types.MaintenanceTicket{}, err
	}

	item.UnderMaintenance = true
	item.Available = false
	if _, err := s.repo.UpdateEquipment(ctx, item); err != nil {
		return types.MaintenanceTicket{}, err
	}
	return ticket, nil
}

// Resolve closes a pending ticket and clears the equipment's maintenance
// flag. Availability is restored only when no active reservation still
// holds the item.
func (s *MaintenanceService) Resolve(ctx context.Context, ticketID int) (types.MaintenanceTicket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return types.MaintenanceTicket{}, err
	}
	if ticket.Status != types.TicketPending {
		return types.MaintenanceTicket{}, fmt.Errorf("%w: ticket %d is already %s", store.ErrInvalidState, ticketID, ticket.Status)
	}

	ticket.Status = types.TicketResolved
	if _, err := s.repo.UpdateTicket(ctx, ticket); err != nil {
		return types.MaintenanceTicket{}, err
	}

	item, err := s.repo.GetEquipmentByID(ctx, ticket.EquipmentID)
	if err != nil {
		return types.MaintenanceTicket{}, err
	}
	active, err := s.repo.ListActiveReservationsByEquipment(ctx, ticket.EquipmentID)
	if err != nil {
		return types.MaintenanceTicket{}, err
	}
	item.UnderMaintenance = false
	item.Available = len(active) == 0
	if _, err := s.repo.UpdateEquipment(ctx, item); err != nil {
		return types.MaintenanceTicket{}, err
	}
	return ticket, nil
}

func (s *MaintenanceService) List(ctx context.Context) ([]types.MaintenanceTicket, error) {
	return s.repo.ListTickets(ctx)
}

// SupportRequest forwards a free-form message from the user to the support
// address. Messages under 10 characters are rejected.
func (s *MaintenanceService) SupportRequest(ctx context.Context, userEmail, message string) error {
	message = strings.TrimSpace(message)
	if len([]rune(message)) < 10 {
		return fmt.Errorf("%w: support message must have at least 10 characters", store.ErrValidation)
	}
	s.notifier.Notify(ctx, s.supportAddress, "Support request from "+userEmail, message, true)
	return nil
}
