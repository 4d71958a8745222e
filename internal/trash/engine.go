package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/wrm/internal/core/atomic"
	"github.com/babarot/wrm/internal/ledger"
	"github.com/babarot/wrm/internal/utils/fs"
	"github.com/samber/lo"
)

// RestoreStatus tells a restored item apart from a lookup miss
type RestoreStatus int

const (
	RestoreNotFound RestoreStatus = iota
	RestoreRestored
)

func (s RestoreStatus) String() string {
	switch s {
	case RestoreRestored:
		return "restored"
	default:
		return "not found"
	}
}

// CleanStatus tells a purge apart from a no-op on an empty ledger
type CleanStatus int

const (
	CleanEmpty CleanStatus = iota
	CleanCleaned
)

// Item is a ledger entry whose trashed object is present on disk
type Item struct {
	// Name is the base name inside the trash directory
	Name         string
	OriginalPath string
	TrashPath    string
	Type         fs.FileType
}

// Outcome describes what an engine operation did
type Outcome struct {
	Kind Kind

	// Path is the resolved path the operation was asked to act on
	Path string
	Type fs.FileType

	// TrashPath is where a removed item was moved to
	TrashPath string

	// Trashed is false when remove deleted a symlink outright
	Trashed bool

	Restore RestoreStatus
	Entry   ledger.Entry

	// Pruned holds entries dropped by the reconcile that follows delete
	// and a successful restore
	Pruned []ledger.Entry

	Clean CleanStatus
	Count int
	Size  int64
}

// Engine runs trash operations against one trash directory and ledger
type Engine struct {
	config  Config
	store   *ledger.Store
	protect *protector
}

// Option configures an Engine
type Option func(*Engine)

// WithStore replaces the ledger store, which otherwise lives on the real
// filesystem at Config.LedgerPath.
func WithStore(s *ledger.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// NewEngine creates an engine. The directories and the ledger file are
// expected to exist already; see Prepare.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := newProtector(cfg.Protect)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:  cfg,
		protect: p,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = ledger.NewOsStore(cfg.LedgerPath)
	}
	return e, nil
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() Config {
	return e.config
}

// Prepare creates the base directory, the trash directory and an empty
// ledger when they are missing.
func Prepare(cfg Config, store *ledger.Store) error {
	for _, dir := range []string{cfg.Dir, cfg.TrashDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return store.Init()
}

// Remove moves path into the trash directory and records it in the ledger.
// Symlinks are deleted instead of moved.
func (e *Engine) Remove(path string) (Outcome, error) {
	abs, typ, err := e.target("remove", path, false)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Kind: KindRemove, Path: abs, Type: typ}

	if typ == fs.TypeSymlink {
		if err := os.Remove(abs); err != nil {
			return out, NewFileOperationError("remove", abs, err)
		}
		slog.Debug("symlink deleted instead of trashed", "path", abs)
		return out, nil
	}

	l, err := e.store.Load()
	if err != nil {
		return out, err
	}

	dst := e.config.TrashPathFor(abs)
	if err := atomic.Move(abs, dst, atomic.MoveOptions{AllowCrossDev: true}); err != nil {
		return out, NewFileOperationError("remove", abs, err)
	}

	l.Add(ledger.Entry{OriginalPath: abs, TrashPath: dst})
	if err := e.store.Save(l); err != nil {
		slog.Error("moved to trash but ledger was not updated", "from", abs, "to", dst, "error", err)
		return out, err
	}

	slog.Info("moved to trash", "from", abs, "to", dst, "type", typ)
	out.TrashPath = dst
	out.Trashed = true
	return out, nil
}

// Delete permanently removes path, then reconciles the ledger.
func (e *Engine) Delete(path string) (Outcome, error) {
	abs, typ, err := e.target("delete", path, true)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Kind: KindDelete, Path: abs, Type: typ}

	if err := os.RemoveAll(abs); err != nil {
		return out, NewFileOperationError("delete", abs, err)
	}
	slog.Info("deleted permanently", "path", abs, "type", typ)

	pruned, err := e.Reconcile()
	if err != nil {
		return out, err
	}
	out.Pruned = pruned
	return out, nil
}

// Restore moves the trashed object at path back to where it came from,
// then reconciles the ledger. A path that no ledger entry points at yields
// RestoreNotFound and no error, and the ledger is left alone.
func (e *Engine) Restore(path string) (Outcome, error) {
	abs, err := fs.Resolve(path)
	if err != nil {
		return Outcome{}, NewFileOperationError("restore", path, err)
	}
	out := Outcome{Kind: KindRestore, Path: abs, TrashPath: abs}

	l, err := e.store.Load()
	if err != nil {
		return out, err
	}

	entry, ok := findEntry(l, abs)
	if !ok {
		slog.Debug("no ledger entry for path", "path", abs)
		out.Restore = RestoreNotFound
		return out, nil
	}

	typ, err := fs.TypeOf(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return out, NewFileOperationError("restore", abs, ErrNoSuchFile)
		}
		return out, NewFileOperationError("restore", abs, err)
	}
	out.Type = typ

	if err := atomic.Move(abs, entry.OriginalPath, atomic.MoveOptions{AllowCrossDev: true}); err != nil {
		return out, NewFileOperationError("restore", abs, err)
	}

	l.Remove(entry)
	if err := e.store.Save(l); err != nil {
		return out, err
	}

	slog.Info("restored from trash", "from", abs, "to", entry.OriginalPath, "type", typ)
	out.Restore = RestoreRestored
	out.Entry = entry

	pruned, err := e.Reconcile()
	if err != nil {
		return out, err
	}
	out.Pruned = pruned
	return out, nil
}

// findEntry returns the most recently added entry whose trash path
// resolves to abs.
func findEntry(l *ledger.Ledger, abs string) (ledger.Entry, bool) {
	return l.FindLast(func(en ledger.Entry) bool {
		p, err := fs.Resolve(en.TrashPath)
		return err == nil && p == abs
	})
}

// List returns the ledger entries whose trashed object is a regular file
// or a directory that is still on disk. Nothing is pruned.
func (e *Engine) List() ([]Item, error) {
	l, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(l.Entries(), func(en ledger.Entry, _ int) (Item, bool) {
		typ, err := fs.TypeOf(en.TrashPath)
		if err != nil || (typ != fs.TypeFile && typ != fs.TypeDirectory) {
			return Item{}, false
		}
		return Item{
			Name:         filepath.Base(en.TrashPath),
			OriginalPath: en.OriginalPath,
			TrashPath:    en.TrashPath,
			Type:         typ,
		}, true
	}), nil
}

// Clean deletes the whole trash directory and the ledger file. The next
// run recreates both through Prepare.
func (e *Engine) Clean() (Outcome, error) {
	out := Outcome{Kind: KindClean, Path: e.config.TrashDir}

	l, err := e.store.Load()
	if err != nil {
		return out, err
	}
	if l.IsEmpty() {
		out.Clean = CleanEmpty
		return out, nil
	}

	size, err := fs.DirSize(e.config.TrashDir)
	if err != nil {
		slog.Warn("failed to compute trash size", "dir", e.config.TrashDir, "error", err)
	}

	if err := os.RemoveAll(e.config.TrashDir); err != nil {
		return out, NewFileOperationError("clean", e.config.TrashDir, err)
	}
	if err := e.store.Delete(); err != nil {
		return out, err
	}

	slog.Info("trash cleaned", "entries", l.Len(), "bytes", size)
	out.Clean = CleanCleaned
	out.Count = l.Len()
	out.Size = size
	return out, nil
}

// Reconcile drops ledger entries whose trashed object no longer exists and
// returns them. The ledger is only written when something was dropped.
func (e *Engine) Reconcile() ([]ledger.Entry, error) {
	l, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	pruned := l.Prune(func(en ledger.Entry) bool {
		return !fs.Exists(en.TrashPath)
	})
	if len(pruned) == 0 {
		return nil, nil
	}

	if err := e.store.Save(l); err != nil {
		return nil, err
	}
	for _, en := range pruned {
		slog.Info("dropped stale ledger entry", "path", en.OriginalPath, "trash", en.TrashPath)
	}
	return pruned, nil
}

// target resolves path for remove and delete, refuses protected locations
// and reports the lstat type.
func (e *Engine) target(op, path string, allowInTrash bool) (string, fs.FileType, error) {
	if unsafe, _ := fs.IsUnsafePath(path); unsafe {
		return "", fs.TypeOther, NewFileOperationError(op, path, ErrProtectedPath)
	}

	abs, err := fs.Resolve(path)
	if err != nil {
		return "", fs.TypeOther, NewFileOperationError(op, path, err)
	}

	if err := e.checkProtected(abs, allowInTrash); err != nil {
		return "", fs.TypeOther, NewFileOperationError(op, abs, err)
	}

	typ, err := fs.TypeOf(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fs.TypeOther, NewFileOperationError(op, abs, ErrNoSuchFile)
		}
		return "", fs.TypeOther, NewFileOperationError(op, abs, err)
	}
	return abs, typ, nil
}

func (e *Engine) checkProtected(abs string, allowInTrash bool) error {
	if unsafe, _ := fs.IsUnsafePath(abs); unsafe {
		return ErrProtectedPath
	}

	// The wrm directory itself or one of its parents
	if fs.IsWithin(e.config.Dir, abs) {
		return fmt.Errorf("%w: contains %s", ErrProtectedPath, e.config.Dir)
	}

	if fs.IsWithin(abs, e.config.Dir) {
		inTrash := fs.IsWithin(abs, e.config.TrashDir) && abs != e.config.TrashDir
		if !allowInTrash || !inTrash {
			return fmt.Errorf("%w: inside %s", ErrProtectedPath, e.config.Dir)
		}
	}

	if desc, ok := e.protect.match(abs); ok {
		return fmt.Errorf("%w: matches %s", ErrProtectedPath, desc)
	}
	return nil
}
