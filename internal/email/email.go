// Package email turns a submitted form record into a rendered
// notification email and hands it to a mail provider.
//
// This package defines a Mailer interface with implementations for:
// - SMTP (for development with Mailhog and production with SMTP relays)
// - Postmark (API-based sending with provider message ids)
// - Dev (writes outgoing mail to disk instead of sending)
package email

import (
	"context"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Mailer dispatches a single rendered email to the provider.
//
// Send returns the provider-assigned message id on success. There is no
// batching, queuing or retry here; one send per call, and the caller
// decides what a failure means.
//
// All implementations are context-aware for timeout and cancellation.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// =============================================================================
// Email Data Types
// =============================================================================

// Message represents a single outgoing email.
type Message struct {
	To       string // Recipient email address
	Subject  string // Email subject line
	HTMLBody string // HTML content of the email
	TextBody string // Plain text fallback content (optional)
	Tag      string // Provider-side categorization tag (optional)
}

// =============================================================================
// Configuration Types
// =============================================================================

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host     string // SMTP server hostname (e.g., "localhost" for Mailhog)
	Port     int    // SMTP server port (e.g., 1025 for Mailhog)
	Username string // SMTP authentication username (empty for Mailhog)
	Password string // SMTP authentication password (empty for Mailhog)
	From     string // Sender email address
	FromName string // Sender display name
}

// PostmarkConfig holds Postmark API credentials and sender identity.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	From         string
}
