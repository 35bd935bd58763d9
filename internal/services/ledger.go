package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// LateFeePerDay is the flat per-day charge for overdue returns, in currency
// units. No ceiling, no grace period.
const LateFeePerDay = 10

// Notifier is the outbound notification gateway. Delivery failure is
// reported as a boolean and never aborts the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string, interactive bool) bool
}

// LedgerRepository defines the persistence the reservation ledger needs: the
// reservation collection plus the equipment availability flag it drives.
type LedgerRepository interface {
	GetEquipmentByID(ctx context.Context, id int) (types.Equipment, error)
	UpdateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error)
	CreateReservation(ctx context.Context, record types.Reservation) (types.Reservation, error)
	GetReservationByID(ctx context.Context, id int) (types.Reservation, error)
	ListReservations(ctx context.Context) ([]types.Reservation, error)
	ListActiveReservationsByEquipment(ctx context.Context, equipmentID int) ([]types.Reservation, error)
	UpdateReservation(ctx context.Context, record types.Reservation) (types.Reservation, error)
}

// ReturnResult reports the outcome of returning a loan.
type ReturnResult struct {
	OnTime   bool `json:"on_time"`
	DaysLate int  `json:"days_late"`
	Fee      int  `json:"fee"`
}

// AlertKind distinguishes the two due-date sweep outcomes.
type AlertKind string

const (
	AlertReminder AlertKind = "reminder"
	AlertOverdue  AlertKind = "overdue"
)

// PendingAlert is one notification emitted by the due-date sweep.
type PendingAlert struct {
	Reservation types.Reservation `json:"reservation"`
	Kind        AlertKind         `json:"kind"`
}

// LedgerService owns the reservation/loan lifecycle. It enforces
// at-most-one-active-record-per-item and drives the equipment availability
// flag on every transition.
type LedgerService struct {
	repo     LedgerRepository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewLedgerService(repo LedgerRepository, notifier Notifier, log *zap.Logger) *LedgerService {
	return &LedgerService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// CreateReservation records a reservation for the equipment and marks it
// unavailable.
func (s *LedgerService) CreateReservation(ctx context.Context, equipmentID int, userEmail string, dueDate types.Date) (types.Reservation, error) {
	return s.createRecord(ctx, equipmentID, userEmail, dueDate, types.StatusReserved)
}

// CreateLoan records an immediate check-out. It enforces the same
// double-booking invariant as CreateReservation; a loan is not a transition
// of an existing reservation but an independent record.
func (s *LedgerService) CreateLoan(ctx context.Context, equipmentID int, userEmail string, dueDate types.Date) (types.Reservation, error) {
	return s.createRecord(ctx, equipmentID, userEmail, dueDate, types.StatusLoaned)
}

func (s *LedgerService) createRecord(ctx context.Context, equipmentID int, userEmail string, dueDate types.Date, status types.ReservationStatus) (types.Reservation, error) {
	if dueDate.IsZero() {
		return types.Reservation{}, fmt.Errorf("%w: due date is required", store.ErrValidation)
	}

	item, err := s.repo.GetEquipmentByID(ctx, equipmentID)
	if err != nil {
		return types.Reservation{}, err
	}
	if !item.Available {
		return types.Reservation{}, fmt.Errorf("%w: equipment %q is not available", store.ErrConflict, item.Name)
	}

	active, err := s.repo.ListActiveReservationsByEquipment(ctx, equipmentID)
	if err != nil {
		return types.Reservation{}, err
	}
	if len(active) > 0 {
		return types.Reservation{}, fmt.Errorf("%w: equipment %q already has an active reservation", store.ErrConflict, item.Name)
	}

	item.Available = false
	if _, err := s.repo.UpdateEquipment(ctx, item); err != nil {
		return types.Reservation{}, err
	}

	record, err := s.repo.CreateReservation(ctx, types.Reservation{
		EquipmentID: equipmentID,
		UserEmail:   userEmail,
		CreatedAt:   types.DateTimeOf(s.now()),
		DueDate:     dueDate,
		Status:      status,
	})
	if err != nil {
		return types.Reservation{}, err
	}

	subject := "Reservation confirmed"
	if status == types.StatusLoaned {
		subject = "Loan confirmed"
	}
	s.notifier.Notify(ctx, userEmail, subject,
		fmt.Sprintf("%s for %s, due %s", subject, item.Name, dueDate), true)
	return record, nil
}

// ReturnItem closes a loan owned by the caller. The equipment becomes
// available again; a late return is charged LateFeePerDay per whole day and
// reported to the user.
func (s *LedgerService) ReturnItem(ctx context.Context, reservationID int, userEmail string) (ReturnResult, error) {
	record, err := s.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return ReturnResult{}, err
	}
	if !strings.EqualFold(record.UserEmail, userEmail) {
		return ReturnResult{}, fmt.Errorf("%w: loan %d belongs to another user", store.ErrNotOwner, reservationID)
	}
	if record.Status != types.StatusLoaned {
		return ReturnResult{}, fmt.Errorf("%w: record %d is %s, not an active loan", store.ErrInvalidState, reservationID, record.Status)
	}

	returned := types.DateOf(s.now())
	record.Status = types.StatusReturned
	record.ActualReturnDate = &returned
	if _, err := s.repo.UpdateReservation(ctx, record); err != nil {
		return ReturnResult{}, err
	}

	item, err := s.repo.GetEquipmentByID(ctx, record.EquipmentID)
	if err != nil {
		return ReturnResult{}, err
	}
	item.Available = true
	if _, err := s.repo.UpdateEquipment(ctx, item); err != nil {
		return ReturnResult{}, err
	}

	daysLate := returned.DaysSince(record.DueDate)
	if daysLate < 0 {
		daysLate = 0
	}
	result := ReturnResult{
		OnTime:   daysLate == 0,
		DaysLate: daysLate,
		Fee:      daysLate * LateFeePerDay,
	}
	if daysLate > 0 {
		s.notifier.Notify(ctx, record.UserEmail, "Late return",
			fmt.Sprintf("%s returned %d day(s) late. Late fee applied: %d", item.Name, daysLate, result.Fee), false)
	}
	return result, nil
}

// CancelReservation cancels a record still in the reserved state and frees
// the equipment. Only the owning user may cancel.
func (s *LedgerService) CancelReservation(ctx context.Context, reservationID int, userEmail string) error {
	record, err := s.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(record.UserEmail, userEmail) {
		return fmt.Errorf("%w: reservation %d belongs to another user", store.ErrNotOwner, reservationID)
	}
	if record.Status != types.StatusReserved {
		return fmt.Errorf("%w: record %d is %s, not reserved", store.ErrInvalidState, reservationID, record.Status)
	}

	record.Status = types.StatusCancelled
	if _, err := s.repo.UpdateReservation(ctx, record); err != nil {
		return err
	}

	item, err := s.repo.GetEquipmentByID(ctx, record.EquipmentID)
	if err != nil {
		return err
	}
	item.Available = true
	_, err = s.repo.UpdateEquipment(ctx, item)
	return err
}

// RenewLoan extends the due date of an active loan owned by the caller. The
// new due date must be strictly later than the current one; the loan record
// itself is the only precondition, the equipment flags are untouched.
func (s *LedgerService) RenewLoan(ctx context.Context, reservationID int, userEmail string, newDueDate types.Date) error {
	record, err := s.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(record.UserEmail, userEmail) {
		return fmt.Errorf("%w: loan %d belongs to another user", store.ErrNotOwner, reservationID)
	}
	if record.Status != types.StatusLoaned {
		return fmt.Errorf("%w: record %d is %s, not an active loan", store.ErrInvalidState, reservationID, record.Status)
	}
	if newDueDate.IsZero() || !newDueDate.After(record.DueDate.Time) {
		return fmt.Errorf("%w: new due date must be after %s", store.ErrValidation, record.DueDate)
	}

	record.DueDate = newDueDate
	if _, err := s.repo.UpdateReservation(ctx, record); err != nil {
		return err
	}

	name := s.equipmentName(ctx, record.EquipmentID)
	s.notifier.Notify(ctx, record.UserEmail, "Loan renewed",
		fmt.Sprintf("%s is now due %s", name, newDueDate), true)
	return nil
}

// ListForUser returns the caller's records in insertion order.
func (s *LedgerService) ListForUser(ctx context.Context, userEmail string) ([]types.Reservation, error) {
	records, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	var owned []types.Reservation
	for _, record := range records {
		if strings.EqualFold(record.UserEmail, userEmail) {
			owned = append(owned, record)
		}
	}
	return owned, nil
}

func (s *LedgerService) ListAll(ctx context.Context) ([]types.Reservation, error) {
	return s.repo.ListReservations(ctx)
}

// CheckPending sweeps every active record once, comparing due dates by
// calendar day: due tomorrow emits a reminder, due before today emits an
// overdue alert, due today emits nothing. Each alert is delivered
// non-interactively and also returned to the caller.
func (s *LedgerService) CheckPending(ctx context.Context) ([]PendingAlert, error) {
	records, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	today := types.DateOf(s.now())
	var alerts []PendingAlert
	for _, record := range records {
		if !record.Status.Active() {
			continue
		}
		name := s.equipmentName(ctx, record.EquipmentID)
		switch days := record.DueDate.DaysSince(today); {
		case days == 1:
			alerts = append(alerts, PendingAlert{Reservation: record, Kind: AlertReminder})
			s.notifier.Notify(ctx, record.UserEmail, "Return reminder",
				fmt.Sprintf("%s is due tomorrow, %s", name, record.DueDate), false)
		case days < 0:
			alerts = append(alerts, PendingAlert{Reservation: record, Kind: AlertOverdue})
			s.notifier.Notify(ctx, record.UserEmail, "Overdue return",
				fmt.Sprintf("%s was due %s", name, record.DueDate), false)
		}
	}

	if s.log != nil {
		s.log.Info("due-date sweep finished",
			zap.Int("records", len(records)),
			zap.Int("alerts", len(alerts)),
		)
	}
	return alerts, nil
}

func (s *LedgerService) equipmentName(ctx context.Context, equipmentID int) string {
	item, err := s.repo.GetEquipmentByID(ctx, equipmentID)
	if err != nil {
		return "unknown equipment"
	}
	return item.Name
}
