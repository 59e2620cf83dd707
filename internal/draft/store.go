// Package draft persists in-progress form input so an interrupted guest
// can pick up where they left off. One entry per form identifier; an
// entry survives until the form is submitted successfully or the stored
// data turns out to be unreadable.
package draft

import (
	"context"

	"github.com/simphiwe/guesthouse/internal/form"
)

// Store is the form state store.
//
// Save overwrites the whole entry for formID with the record's current
// field values. Load returns the stored record, or ok=false when no
// usable entry exists; a corrupted entry is evicted as a side effect and
// reported as absent, never as an error. Clear removes the entry and is
// idempotent.
type Store interface {
	Save(ctx context.Context, formID string, rec form.Record) error
	Load(ctx context.Context, formID string) (rec form.Record, ok bool, err error)
	Clear(ctx context.Context, formID string) error
}
