package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/tabgrid/internal/model"
)

// Storage defines the interface for persisting bookmarks and settings.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

type unavailable struct{ err error }

func (u unavailable) Load() (*model.Store, error) { return nil, u.err }
func (u unavailable) Save(*model.Store) error     { return u.err }

// Unavailable returns a Storage that fails every call with err. It stands in
// for a backend that could not be opened so the session still starts.
func Unavailable(err error) Storage {
	return unavailable{err: err}
}

// JSONStorage implements Storage using a single JSON document holding
// the bookmarks and settings records.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns a default store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	return decodeRecords(records)
}

// Save writes both records to the JSON file.
// The file is replaced via rename so a crash never leaves it half written.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	records, err := encodeRecords(store)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, s.path)
}

// OpenStorage opens the backend selected in the config.
func OpenStorage(cfg *Config) (Storage, error) {
	switch cfg.Backend {
	case BackendSQLite:
		path, err := DefaultSQLitePath()
		if err != nil {
			return nil, err
		}
		return NewSQLiteStorage(path)
	case BackendJSON, "":
		path, err := DefaultDataPath()
		if err != nil {
			return nil, err
		}
		return NewJSONStorage(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
