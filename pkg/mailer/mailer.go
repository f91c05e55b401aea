package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/rajchaudar/HR-Dep/pkg/config"
)

// Sender delivers transactional mail. Services depend on this interface so
// tests can capture outgoing messages.
type Sender interface {
	Send(ctx context.Context, to, subject, textBody string) error
}

// SMTPMailer sends mail over authenticated SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// New validates the SMTP settings and returns a mailer.
func New(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send delivers a plain-text message. A fresh client per send keeps the
// mailer connection-free between requests.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, textBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
