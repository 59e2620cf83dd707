package email

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/google/uuid"
)

// =============================================================================
// SMTP Mailer Implementation
// =============================================================================

// SMTPMailer sends emails via SMTP.
//
// This implementation works with:
// - Mailhog (development): No authentication required
// - Any standard SMTP relay with PLAIN auth
//
// SMTP does not hand back a provider message id, so Send returns a
// locally generated one to keep the Mailer contract uniform.
type SMTPMailer struct {
	config SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer creates a new SMTP-based mailer.
func NewSMTPMailer(config SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// Send delivers one message over SMTP.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	body := m.buildMessage(msg)
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	// Auth only when credentials are provided (Mailhog needs none)
	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{msg.To}, body); err != nil {
		m.logger.Error("failed to send email",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	id := uuid.NewString()
	m.logger.Info("email sent",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", id,
	)
	return id, nil
}

// buildMessage constructs the raw email message with headers.
func (m *SMTPMailer) buildMessage(msg Message) []byte {
	var buf bytes.Buffer

	fromHeader := fmt.Sprintf("%s <%s>", m.config.FromName, m.config.From)

	buf.WriteString(fmt.Sprintf("From: %s\r\n", fromHeader))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	// Multipart message for HTML + text
	boundary := "===============GUESTHOUSE_BOUNDARY==============="
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary))
	buf.WriteString("\r\n")

	// Plain text part
	buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.TextBody)
	buf.WriteString("\r\n")

	// HTML part
	buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTMLBody)
	buf.WriteString("\r\n")

	buf.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return buf.Bytes()
}

var _ Mailer = (*SMTPMailer)(nil)
