package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevMailer implements Mailer for local development. It saves outgoing
// mail as HTML and JSON files in a directory instead of sending it, so
// the rendered templates can be opened in a browser.
type DevMailer struct {
	dir    string
	logger *slog.Logger
}

// NewDevMailer creates a development mailer that writes to dir. The
// directory is created on first send.
func NewDevMailer(dir string, logger *slog.Logger) *DevMailer {
	return &DevMailer{dir: dir, logger: logger}
}

// devMetadata is the sidecar JSON written next to each HTML body.
type devMetadata struct {
	Timestamp string `json:"timestamp"`
	MessageID string `json:"message_id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

// Send writes the message to disk and returns a generated message id.
func (m *DevMailer) Send(ctx context.Context, msg Message) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create mail output directory: %w", err)
	}

	now := time.Now()
	id := uuid.NewString()

	identifier := msg.Tag
	if identifier == "" {
		identifier = msg.Subject
	}
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(identifier))

	htmlPath := filepath.Join(m.dir, base+".html")
	if err := os.WriteFile(htmlPath, []byte(msg.HTMLBody), 0644); err != nil {
		return "", fmt.Errorf("failed to write HTML file: %w", err)
	}

	meta := devMetadata{
		Timestamp: now.Format(time.RFC3339),
		MessageID: id,
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, base+".json"), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata file: %w", err)
	}

	m.logger.Info("email written to disk",
		"to", msg.To,
		"subject", msg.Subject,
		"path", htmlPath,
	)
	return id, nil
}

// sanitizeRegex matches characters that are not safe in filenames.
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts an arbitrary subject or tag into a safe,
// reasonably short filename fragment.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}

var _ Mailer = (*DevMailer)(nil)
