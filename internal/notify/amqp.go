package notify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/beatrizzfernandes/gestao-equipamentos/config"
)

// AMQPBackend publishes notifications to a RabbitMQ queue for an external
// mailer daemon to deliver.
type AMQPBackend struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewAMQPBackend constructs a RabbitMQ-backed notifier from config.
func NewAMQPBackend(cfg config.AMQPConfig) (*AMQPBackend, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("amqp url is required")
	}
	queue := strings.TrimSpace(cfg.Queue)
	if queue == "" {
		return nil, errors.New("amqp queue is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPBackend{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func (b *AMQPBackend) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	return b.channel.PublishWithContext(ctx, "", b.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   newMessageID(),
		Headers: amqp.Table{
			"recipient": n.Recipient,
			"subject":   n.Subject,
		},
		Body: body,
	})
}

// Close closes the underlying channel and connection.
func (b *AMQPBackend) Close() error {
	if b.channel != nil {
		_ = b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

func newMessageID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(buf[:])
}
