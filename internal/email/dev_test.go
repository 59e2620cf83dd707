package email

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevMailer_WritesHTMLAndMetadata(t *testing.T) {
	dir := t.TempDir()
	mailer := NewDevMailer(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	id, err := mailer.Send(context.Background(), Message{
		To:       "owner@simphiweguesthouse.com",
		Subject:  "NEW GUEST REVIEW: 5 Stars by Sipho Nkambule",
		HTMLBody: "<div>review</div>",
		Tag:      "review",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlPath, jsonPath string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlPath = filepath.Join(dir, e.Name())
		case ".json":
			jsonPath = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, htmlPath)
	require.NotEmpty(t, jsonPath)

	body, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "<div>review</div>", string(body))

	var meta devMetadata
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, id, meta.MessageID)
	assert.Equal(t, "owner@simphiweguesthouse.com", meta.To)
	assert.Equal(t, "review", meta.Tag)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"NEW BOOKING REQUEST: x", "new_booking_request_x"},
		{"", "email"},
		{"../../etc/passwd", "....etcpasswd"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 100)
			assert.False(t, strings.ContainsAny(got, " /:"))
		})
	}
}
