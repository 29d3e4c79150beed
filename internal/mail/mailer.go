// Package mail sends outbound email through an SMTP relay.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Mailer delivers a message to the given recipients. Implementations must be
// safe for concurrent use; failures are reported to the caller, never fatal.
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients ...string) error
}

// SMTPMailer sends mail through an SMTP server using go-mail.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPMailer creates an SMTPMailer from the given settings.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send delivers a plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, subject, body string, recipients ...string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// NoopMailer discards all messages. Used when no SMTP host is configured.
type NoopMailer struct{}

// Send implements Mailer and does nothing.
func (NoopMailer) Send(_ context.Context, _, _ string, _ ...string) error {
	return nil
}
