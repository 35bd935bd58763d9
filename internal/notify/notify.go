package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beatrizzfernandes/gestao-equipamentos/config"
)

// Notification is a message addressed to a single recipient. Interactive
// notifications are additionally surfaced to the requesting user by the
// transport layer.
type Notification struct {
	Recipient   string `json:"recipient"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	Interactive bool   `json:"interactive"`
}

// Backend delivers a notification. One implementation per delivery flavor.
type Backend interface {
	Send(ctx context.Context, n Notification) error
	Close() error
}

// Notifier wraps a backend with a stable API. Delivery failures are logged
// and never abort the triggering operation.
type Notifier struct {
	backend Backend
	log     *zap.Logger
}

// New constructs a Notifier for the provided backend.
func New(backend Backend, log *zap.Logger) *Notifier {
	return &Notifier{backend: backend, log: log}
}

// Open constructs a Notifier with the backend selected by config.
func Open(cfg config.NotifierConfig, log *zap.Logger) (*Notifier, error) {
	switch cfg.Backend {
	case config.NotifierLog:
		return New(NewLogBackend(log), log), nil
	case config.NotifierSMTP:
		backend, err := NewSMTPBackend(cfg.SMTP, cfg.Sender)
		if err != nil {
			return nil, err
		}
		return New(backend, log), nil
	case config.NotifierAMQP:
		backend, err := NewAMQPBackend(cfg.AMQP)
		if err != nil {
			return nil, err
		}
		return New(backend, log), nil
	default:
		return nil, fmt.Errorf("unknown notifier backend %q", cfg.Backend)
	}
}

// Notify delivers a message to the recipient. Returns whether delivery
// succeeded; failure is non-fatal by contract.
func (n *Notifier) Notify(ctx context.Context, recipient, subject, body string, interactive bool) bool {
	err := n.backend.Send(ctx, Notification{
		Recipient:   recipient,
		Subject:     subject,
		Body:        body,
		Interactive: interactive,
	})
	if err != nil {
		n.log.Warn("notification delivery failed",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Close closes the underlying backend.
func (n *Notifier) Close() error {
	return n.backend.Close()
}
