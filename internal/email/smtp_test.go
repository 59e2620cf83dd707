package email

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMTPMailer_BuildMessage(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{
		Host:     "localhost",
		Port:     1025,
		From:     "noreply@simphiweguesthouse.com",
		FromName: "Simphiwe Guesthouse",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	raw := string(mailer.buildMessage(Message{
		To:       "owner@simphiweguesthouse.com",
		Subject:  "NEW BOOKING REQUEST: Thandi Dlamini (2024-05-01 - 2024-05-04)",
		HTMLBody: "<div>booking</div>",
		TextBody: "booking",
	}))

	assert.Contains(t, raw, "From: Simphiwe Guesthouse <noreply@simphiweguesthouse.com>\r\n")
	assert.Contains(t, raw, "To: owner@simphiweguesthouse.com\r\n")
	assert.Contains(t, raw, "Subject: NEW BOOKING REQUEST: Thandi Dlamini (2024-05-01 - 2024-05-04)\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative;")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=utf-8\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8\r\n")
	assert.Contains(t, raw, "<div>booking</div>")
}
