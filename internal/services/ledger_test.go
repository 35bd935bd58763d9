package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

func newTestLedger(t *testing.T) (*LedgerService, *store.JSONFileStore, *notifyRecorder) {
	t.Helper()
	backend := newTestBackend(t)
	recorder := &notifyRecorder{}
	svc := NewLedgerService(backend, recorder, zap.NewNop())
	return svc, backend, recorder
}

func TestCreateReservationMarksUnavailable(t *testing.T) {
	svc, backend, recorder := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	due := types.NewDate(2025, time.January, 10)
	record, err := svc.CreateReservation(ctx, item.ID, "ana@universidade.com", due)
	require.NoError(t, err)
	assert.Equal(t, types.StatusReserved, record.Status)
	assert.Equal(t, due, record.DueDate)
	assert.Nil(t, record.ActualReturnDate)

	got, err := backend.GetEquipmentByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)

	require.Len(t, recorder.sent, 1)
	assert.Equal(t, "ana@universidade.com", recorder.sent[0].Recipient)
	assert.True(t, recorder.sent[0].Interactive)
}

func TestCreateReservationDoubleBooking(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")
	due := types.NewDate(2025, time.January, 10)

	_, err := svc.CreateReservation(ctx, item.ID, "ana@universidade.com", due)
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, item.ID, "bruno@universidade.com", due)
	assert.ErrorIs(t, err, store.ErrConflict)
	_, err = svc.CreateLoan(ctx, item.ID, "bruno@universidade.com", due)
	assert.ErrorIs(t, err, store.ErrConflict)

	records, err := backend.ListReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCreateLoanEnforcesDoubleBooking(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Notebook Dell")
	due := types.NewDate(2025, time.January, 10)

	_, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", due)
	require.NoError(t, err)

	_, err = svc.CreateLoan(ctx, item.ID, "bruno@universidade.com", due)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestCreateReservationUnknownEquipment(t *testing.T) {
	svc, _, _ := newTestLedger(t)
	_, err := svc.CreateReservation(context.Background(), 99, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateReservationRequiresDueDate(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	item := mustCreateEquipment(t, backend, "Projetor Epson")
	_, err := svc.CreateReservation(context.Background(), item.ID, "ana@universidade.com", types.Date{})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestReturnItemLate(t *testing.T) {
	svc, backend, recorder := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	due := types.NewDate(2025, time.January, 10)
	record, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", due)
	require.NoError(t, err)

	svc.now = fixedClock(time.Date(2025, time.January, 15, 16, 45, 0, 0, time.UTC))
	result, err := svc.ReturnItem(ctx, record.ID, "ana@universidade.com")
	require.NoError(t, err)
	assert.False(t, result.OnTime)
	assert.Equal(t, 5, result.DaysLate)
	assert.Equal(t, 50, result.Fee)

	got, err := backend.GetReservationByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusReturned, got.Status)
	require.NotNil(t, got.ActualReturnDate)
	assert.Equal(t, types.NewDate(2025, time.January, 15), *got.ActualReturnDate)

	equip, err := backend.GetEquipmentByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, equip.Available)

	// Loan confirmation plus the late-return notice.
	require.Len(t, recorder.sent, 2)
	assert.Equal(t, "Late return", recorder.sent[1].Subject)
	assert.False(t, recorder.sent[1].Interactive)
}

func TestReturnItemOnTime(t *testing.T) {
	svc, backend, recorder := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	due := types.NewDate(2025, time.January, 10)
	record, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", due)
	require.NoError(t, err)

	svc.now = fixedClock(time.Date(2025, time.January, 8, 10, 0, 0, 0, time.UTC))
	result, err := svc.ReturnItem(ctx, record.ID, "ana@universidade.com")
	require.NoError(t, err)
	assert.True(t, result.OnTime)
	assert.Zero(t, result.DaysLate)
	assert.Zero(t, result.Fee)

	// Only the loan confirmation, no late notice.
	assert.Len(t, recorder.sent, 1)
}

func TestReturnItemWrongState(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	record, err := svc.CreateReservation(ctx, item.ID, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	_, err = svc.ReturnItem(ctx, record.ID, "ana@universidade.com")
	assert.ErrorIs(t, err, store.ErrInvalidState)

	_, err = svc.ReturnItem(ctx, 99, "ana@universidade.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReturnItemNotOwner(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	record, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	_, err = svc.ReturnItem(ctx, record.ID, "bruno@universidade.com")
	assert.ErrorIs(t, err, store.ErrNotOwner)
}

func TestCancelReservation(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	record, err := svc.CreateReservation(ctx, item.ID, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	require.NoError(t, svc.CancelReservation(ctx, record.ID, "ana@universidade.com"))

	got, err := backend.GetReservationByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCancelled, got.Status)

	equip, err := backend.GetEquipmentByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, equip.Available)

	// A second cancel hits a record no longer in the reserved state.
	err = svc.CancelReservation(ctx, record.ID, "ana@universidade.com")
	assert.ErrorIs(t, err, store.ErrInvalidState)
}

func TestCancelReservationOwnershipBeforeState(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	record, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	// Wrong owner on a non-cancellable record: ownership wins.
	err = svc.CancelReservation(ctx, record.ID, "bruno@universidade.com")
	assert.ErrorIs(t, err, store.ErrNotOwner)
}

func TestRenewLoan(t *testing.T) {
	svc, backend, recorder := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	due := types.NewDate(2025, time.January, 10)
	record, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", due)
	require.NoError(t, err)

	// Equal and earlier dates are rejected.
	err = svc.RenewLoan(ctx, record.ID, "ana@universidade.com", due)
	assert.ErrorIs(t, err, store.ErrValidation)
	err = svc.RenewLoan(ctx, record.ID, "ana@universidade.com", due.AddDays(-1))
	assert.ErrorIs(t, err, store.ErrValidation)

	newDue := due.AddDays(7)
	require.NoError(t, svc.RenewLoan(ctx, record.ID, "ana@universidade.com", newDue))

	got, err := backend.GetReservationByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, newDue, got.DueDate)
	assert.Equal(t, types.StatusLoaned, got.Status)

	// Renewal succeeds even while the item is unavailable to others.
	equip, err := backend.GetEquipmentByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, equip.Available)

	require.Len(t, recorder.sent, 2)
	assert.Equal(t, "Loan renewed", recorder.sent[1].Subject)
}

func TestRenewLoanWrongStateAndOwner(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()
	item := mustCreateEquipment(t, backend, "Projetor Epson")

	record, err := svc.CreateReservation(ctx, item.ID, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	err = svc.RenewLoan(ctx, record.ID, "ana@universidade.com", types.NewDate(2025, time.January, 20))
	assert.ErrorIs(t, err, store.ErrInvalidState)
}

func TestCheckPending(t *testing.T) {
	svc, backend, recorder := newTestLedger(t)
	ctx := context.Background()

	today := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(today)

	tomorrow := mustCreateEquipment(t, backend, "Projetor Epson")
	yesterday := mustCreateEquipment(t, backend, "Notebook Dell")
	dueToday := mustCreateEquipment(t, backend, "Camera Sony")

	_, err := svc.CreateLoan(ctx, tomorrow.ID, "ana@universidade.com", types.NewDate(2025, time.January, 11))
	require.NoError(t, err)
	_, err = svc.CreateLoan(ctx, yesterday.ID, "bruno@universidade.com", types.NewDate(2025, time.January, 9))
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, dueToday.ID, "carla@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	recorder.sent = nil
	alerts, err := svc.CheckPending(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	byEmail := map[string]AlertKind{}
	for _, alert := range alerts {
		byEmail[alert.Reservation.UserEmail] = alert.Kind
	}
	assert.Equal(t, AlertReminder, byEmail["ana@universidade.com"])
	assert.Equal(t, AlertOverdue, byEmail["bruno@universidade.com"])
	assert.NotContains(t, byEmail, "carla@universidade.com")

	require.Len(t, recorder.sent, 2)
	for _, n := range recorder.sent {
		assert.False(t, n.Interactive)
	}
}

func TestCheckPendingSkipsClosedRecords(t *testing.T) {
	svc, backend, recorder := newTestLedger(t)
	ctx := context.Background()
	svc.now = fixedClock(time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC))

	item := mustCreateEquipment(t, backend, "Projetor Epson")
	record, err := svc.CreateLoan(ctx, item.ID, "ana@universidade.com", types.NewDate(2025, time.January, 5))
	require.NoError(t, err)
	_, err = svc.ReturnItem(ctx, record.ID, "ana@universidade.com")
	require.NoError(t, err)

	recorder.sent = nil
	alerts, err := svc.CheckPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Empty(t, recorder.sent)
}

func TestListForUser(t *testing.T) {
	svc, backend, _ := newTestLedger(t)
	ctx := context.Background()

	first := mustCreateEquipment(t, backend, "Projetor Epson")
	second := mustCreateEquipment(t, backend, "Notebook Dell")

	_, err := svc.CreateLoan(ctx, first.ID, "ana@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)
	_, err = svc.CreateLoan(ctx, second.ID, "bruno@universidade.com", types.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, "Ana@universidade.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].EquipmentID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
