package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogBackend writes notifications to the structured log instead of sending
// them anywhere. This is the simulated-delivery mode used in development.
type LogBackend struct {
	log *zap.Logger
}

func NewLogBackend(log *zap.Logger) *LogBackend {
	return &LogBackend{log: log}
}

func (b *LogBackend) Send(_ context.Context, n Notification) error {
	b.log.Info("simulated notification",
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject),
		zap.String("body", n.Body),
		zap.Bool("interactive", n.Interactive),
	)
	return nil
}

func (b *LogBackend) Close() error {
	return nil
}
