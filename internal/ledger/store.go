package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store reads and writes a Ledger at a fixed path.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a Store for the ledger file at path on fs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewOsStore returns a Store backed by the real filesystem.
func NewOsStore(path string) *Store {
	return NewStore(afero.NewOsFs(), path)
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the ledger file.
func (s *Store) Load() (*Ledger, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("load", s.path, ErrNotExist)
		}
		return nil, NewStorageError("load", s.path, err)
	}

	l := New()
	if err := json.Unmarshal(data, l); err != nil {
		return nil, NewStorageError("load", s.path, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}
	if l.Files == nil {
		l.Files = []Entry{}
	}

	slog.Debug("ledger loaded", "path", s.path, "entries", l.Len())
	return l, nil
}

// Save writes l as indented JSON. The file is replaced through a temporary
// file in the same directory so readers never see a partial write.
func (s *Store) Save(l *Ledger) error {
	if l == nil {
		l = New()
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return NewStorageError("save", s.path, fmt.Errorf("failed to encode ledger: %w", err))
	}

	tmp, err := afero.TempFile(s.fs, filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return NewStorageError("save", s.path, fmt.Errorf("failed to create temporary file: %w", err))
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		s.fs.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return NewStorageError("save", s.path, fmt.Errorf("failed to write ledger: %w", err))
	}

	// Ensure data is written to disk
	if err := tmp.Sync(); err != nil {
		cleanup()
		return NewStorageError("save", s.path, fmt.Errorf("failed to sync ledger: %w", err))
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return NewStorageError("save", s.path, fmt.Errorf("failed to close temporary file: %w", err))
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		s.fs.Remove(tmpPath)
		return NewStorageError("save", s.path, fmt.Errorf("failed to replace ledger: %w", err))
	}

	slog.Debug("ledger saved", "path", s.path, "entries", l.Len())
	return nil
}

// Init writes an empty ledger unless the file already exists.
func (s *Store) Init() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return NewStorageError("init", s.path, err)
	}
	if exists {
		return nil
	}
	slog.Debug("creating empty ledger", "path", s.path)
	return s.Save(New())
}

// Delete removes the ledger file. A missing file is not an error.
func (s *Store) Delete() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return NewStorageError("delete", s.path, err)
	}
	return nil
}
