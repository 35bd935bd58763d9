package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/beatrizzfernandes/gestao-equipamentos/config"
)

// SMTPBackend sends notifications as plain-text mail over a single
// authenticated SMTP hop.
type SMTPBackend struct {
	addr     string
	host     string
	username string
	password string
	sender   string
}

// NewSMTPBackend constructs an SMTP backend from config.
func NewSMTPBackend(cfg config.SMTPConfig, sender string) (*SMTPBackend, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp host is required")
	}
	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.Password) == "" {
		return nil, errors.New("smtp username and password are required")
	}
	if strings.TrimSpace(sender) == "" {
		sender = cfg.Username
	}

	return &SMTPBackend{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		host:     cfg.Host,
		username: cfg.Username,
		password: cfg.Password,
		sender:   sender,
	}, nil
}

func (b *SMTPBackend) Send(_ context.Context, n Notification) error {
	msg := strings.Join([]string{
		"From: " + b.sender,
		"To: " + n.Recipient,
		"Subject: " + n.Subject,
		"",
		n.Body,
	}, "\r\n")

	auth := smtp.PlainAuth("", b.username, b.password, b.host)
	return smtp.SendMail(b.addr, auth, b.sender, []string{n.Recipient}, []byte(msg))
}

func (b *SMTPBackend) Close() error {
	return nil
}
