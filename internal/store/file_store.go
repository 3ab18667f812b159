package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/gurumate/gurumate/internal/state"
)

// FileStore keeps the document as one JSON file on local disk. This is the
// default backend and the on-device equivalent of the browser's single
// local-storage key.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (state.AppState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("WARNING: could not read state file %s, starting fresh: %v", s.path, err)
		}
		return state.Default(), nil
	}
	return decodeDocument(data), nil
}

func (s *FileStore) Save(_ context.Context, st state.AppState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// decodeDocument unmarshals a persisted document over a default template so
// keys the stored schema predates come back as empty lists, never nil.
// Corrupt payloads fall back to a clean default.
func decodeDocument(data []byte) state.AppState {
	st := state.Default()
	if err := json.Unmarshal(data, &st); err != nil {
		log.Printf("WARNING: persisted state is corrupt, starting fresh: %v", err)
		return state.Default()
	}
	st.FillDefaults()
	return st
}
