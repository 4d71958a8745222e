// Package trash moves files into the wrm trash directory, restores them,
// and keeps the ledger in step with what is on disk.
package trash

import (
	"fmt"
	"path/filepath"
)

const (
	trashDirName   = "trash"
	ledgerFileName = "list.json"
)

// Config holds the locations every trash operation works against.
// It is built once at startup and handed to the engine.
type Config struct {
	// Dir is the base directory (~/.config/wrm)
	Dir string

	// TrashDir holds moved items by basename (~/.config/wrm/trash)
	TrashDir string

	// LedgerPath is the ledger file (~/.config/wrm/list.json)
	LedgerPath string

	// Protect lists paths that remove and delete refuse to touch
	Protect ProtectOptions
}

// NewConfig derives the trash directory and ledger path from dir.
func NewConfig(dir string) Config {
	dir = filepath.Clean(dir)
	return Config{
		Dir:        dir,
		TrashDir:   filepath.Join(dir, trashDirName),
		LedgerPath: filepath.Join(dir, ledgerFileName),
	}
}

// TrashPathFor returns where original is stored once trashed.
func (c Config) TrashPathFor(original string) string {
	return filepath.Join(c.TrashDir, filepath.Base(original))
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	for name, p := range map[string]string{
		"base directory":  c.Dir,
		"trash directory": c.TrashDir,
		"ledger path":     c.LedgerPath,
	} {
		if p == "" {
			return fmt.Errorf("%s is not set", name)
		}
		if !filepath.IsAbs(p) {
			return fmt.Errorf("%s must be an absolute path: %s", name, p)
		}
	}
	if filepath.Dir(c.TrashDir) == c.TrashDir {
		return fmt.Errorf("trash directory must not be a filesystem root: %s", c.TrashDir)
	}
	return nil
}
