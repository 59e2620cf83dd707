package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrz1836/postmark"
)

// PostmarkMailer sends emails through the Postmark transactional API.
// Unlike SMTP, the provider assigns and returns a message id we can hand
// back to the caller.
type PostmarkMailer struct {
	client *postmark.Client
	config PostmarkConfig
	logger *slog.Logger
}

// NewPostmarkMailer creates a Postmark-backed mailer. Both tokens are
// required; failing here beats silently dropping mail at runtime.
func NewPostmarkMailer(cfg PostmarkConfig, logger *slog.Logger) (*PostmarkMailer, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("postmark server token is required")
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("postmark account token is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("postmark sender address is required")
	}

	return &PostmarkMailer{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
		logger: logger,
	}, nil
}

// Send delivers one message via the Postmark API.
func (m *PostmarkMailer) Send(ctx context.Context, msg Message) (string, error) {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.config.From,
		To:       msg.To,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTMLBody,
		TextBody: msg.TextBody,
	})
	if err != nil {
		m.logger.Error("failed to send email",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		m.logger.Error("postmark rejected email",
			"to", msg.To,
			"error_code", resp.ErrorCode,
			"message", resp.Message,
		)
		return "", fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
	}

	m.logger.Info("email sent",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", resp.MessageID,
	)
	return resp.MessageID, nil
}

var _ Mailer = (*PostmarkMailer)(nil)
