// Package store persists the AppState document. There is exactly one slot
// per deployment: every save overwrites the whole document, and a load that
// finds nothing (or garbage) yields a default-initialized state rather than
// an error.
package store

import (
	"context"

	"github.com/gurumate/gurumate/internal/state"
)

// Store is the persistence contract for the single AppState slot.
type Store interface {
	// Load reads the persisted document. A missing or corrupt document is
	// not an error: Load returns a default-initialized state instead.
	// A partially-shaped document (older schema) is merged over defaults
	// so newly introduced lists are never nil.
	Load(ctx context.Context) (state.AppState, error)

	// Save serializes the full state and overwrites the slot.
	Save(ctx context.Context, st state.AppState) error

	// Clear removes the persisted slot (logout/reset).
	Clear(ctx context.Context) error
}
