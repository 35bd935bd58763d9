package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// sentNotification records one Notify call made during a test.
type sentNotification struct {
	Recipient   string
	Subject     string
	Body        string
	Interactive bool
}

// notifyRecorder implements Notifier and captures every delivery.
type notifyRecorder struct {
	sent []sentNotification
}

func (r *notifyRecorder) Notify(_ context.Context, recipient, subject, body string, interactive bool) bool {
	r.sent = append(r.sent, sentNotification{
		Recipient:   recipient,
		Subject:     subject,
		Body:        body,
		Interactive: interactive,
	})
	return true
}

func newTestBackend(t *testing.T) *store.JSONFileStore {
	t.Helper()
	backend, err := store.OpenJSONFile(t.TempDir())
	require.NoError(t, err)
	return backend
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustCreateEquipment(t *testing.T, backend *store.JSONFileStore, name string) types.Equipment {
	t.Helper()
	item, err := backend.CreateEquipment(context.Background(), types.Equipment{
		Name:      name,
		Type:      "projector",
		Quantity:  1,
		Available: true,
	})
	require.NoError(t, err)
	return item
}
