package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/simphiwe/guesthouse/internal/form"
)

// =============================================================================
// FileStore Implementation
// =============================================================================

// FileStore implements Store on the local filesystem: one JSON file per
// form identifier under a base directory.
//
// Security: form identifiers are restricted to a safe character set so a
// key can never escape the base directory.
type FileStore struct {
	basePath string
	logger   *slog.Logger
}

// NewFileStore creates a FileStore rooted at basePath, creating the
// directory if needed.
func NewFileStore(basePath string, logger *slog.Logger) (*FileStore, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve draft path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}

	return &FileStore{
		basePath: absPath,
		logger:   logger,
	}, nil
}

// =============================================================================
// Interface Implementation
// =============================================================================

// Save overwrites the stored record for formID.
func (s *FileStore) Save(ctx context.Context, formID string, rec form.Record) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	path, err := s.resolvePath(formID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode draft %q: %w", formID, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write draft %q: %w", formID, err)
	}

	s.logger.Debug("saved draft", "form_id", formID, "fields", len(rec.Fields))
	return nil
}

// Load returns the stored record for formID. A missing entry is not an
// error. A corrupted entry is evicted so the next Load starts clean.
func (s *FileStore) Load(ctx context.Context, formID string) (form.Record, bool, error) {
	if ctx.Err() != nil {
		return form.Record{}, false, ctx.Err()
	}

	path, err := s.resolvePath(formID)
	if err != nil {
		return form.Record{}, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return form.Record{}, false, nil
	}
	if err != nil {
		return form.Record{}, false, fmt.Errorf("failed to read draft %q: %w", formID, err)
	}

	var rec form.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("evicting corrupted draft", "form_id", formID, "error", err)
		_ = os.Remove(path)
		return form.Record{}, false, nil
	}

	return rec, true, nil
}

// Clear removes the entry for formID. Removing a missing entry is fine.
func (s *FileStore) Clear(ctx context.Context, formID string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	path, err := s.resolvePath(formID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear draft %q: %w", formID, err)
	}
	return nil
}

// =============================================================================
// Internal Methods
// =============================================================================

// resolvePath maps a form identifier to its file, rejecting identifiers
// that could traverse outside the base directory.
func (s *FileStore) resolvePath(formID string) (string, error) {
	if formID == "" || !isSafeID(formID) {
		return "", fmt.Errorf("invalid form identifier %q", formID)
	}
	return filepath.Join(s.basePath, formID+".json"), nil
}

// isSafeID allows letters, digits, dash and underscore only.
func isSafeID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return !strings.HasPrefix(id, "-")
}

var _ Store = (*FileStore)(nil)
