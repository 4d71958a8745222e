package trash

import (
	"fmt"
	"os"

	"github.com/babarot/wrm/internal/utils/fs"
)

// Kind is the operation an Action performs
type Kind int

const (
	KindRemove Kind = iota
	KindDelete
	KindRestore
	KindClean
)

func (k Kind) String() string {
	switch k {
	case KindRemove:
		return "remove"
	case KindDelete:
		return "delete"
	case KindRestore:
		return "restore"
	case KindClean:
		return "clean"
	default:
		return "unknown"
	}
}

// Action is a pending operation. Plan computes it without touching
// anything; Apply carries it out, typically after the user confirmed it.
type Action struct {
	Kind Kind

	// Path is the resolved target; the trash directory for clean
	Path string
	Type fs.FileType

	// Entries is the number of ledger entries a clean would drop
	Entries int

	// Items is what a clean would purge, as shown by List
	Items []Item

	// Size is the byte size of the trash directory for clean
	Size int64

	// Unmatched marks a restore of a path that neither exists nor has a
	// ledger entry. Applying it yields RestoreNotFound.
	Unmatched bool
}

// Empty reports whether a clean has nothing to do
func (a Action) Empty() bool {
	return a.Kind == KindClean && a.Entries == 0
}

func (a Action) String() string {
	if a.Kind == KindClean {
		return fmt.Sprintf("clean %d entries in '%s'", a.Entries, a.Path)
	}
	return fmt.Sprintf("%s %s '%s'", a.Kind, a.Type, a.Path)
}

// Plan resolves path and describes what kind would do to it. path is
// ignored for KindClean.
func (e *Engine) Plan(kind Kind, path string) (Action, error) {
	switch kind {
	case KindRemove:
		abs, typ, err := e.target("remove", path, false)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, Path: abs, Type: typ}, nil

	case KindDelete:
		abs, typ, err := e.target("delete", path, true)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, Path: abs, Type: typ}, nil

	case KindRestore:
		abs, err := fs.Resolve(path)
		if err != nil {
			return Action{}, NewFileOperationError("restore", path, err)
		}
		typ, err := fs.TypeOf(abs)
		if err == nil {
			return Action{Kind: kind, Path: abs, Type: typ}, nil
		}
		if !os.IsNotExist(err) {
			return Action{}, NewFileOperationError("restore", abs, err)
		}

		// Nothing on disk: a miss unless the ledger expects an object here
		l, err := e.store.Load()
		if err != nil {
			return Action{}, err
		}
		if _, ok := findEntry(l, abs); ok {
			return Action{}, NewFileOperationError("restore", abs, ErrNoSuchFile)
		}
		return Action{Kind: kind, Path: abs, Type: fs.TypeOther, Unmatched: true}, nil

	case KindClean:
		l, err := e.store.Load()
		if err != nil {
			return Action{}, err
		}
		a := Action{Kind: kind, Path: e.config.TrashDir, Type: fs.TypeDirectory, Entries: l.Len()}
		if a.Empty() {
			return a, nil
		}
		if a.Items, err = e.List(); err != nil {
			return Action{}, err
		}
		a.Size, _ = fs.DirSize(e.config.TrashDir)
		return a, nil
	}

	return Action{}, fmt.Errorf("%w: %d", ErrUnknownAction, kind)
}

// Apply performs a planned action
func (e *Engine) Apply(a Action) (Outcome, error) {
	switch a.Kind {
	case KindRemove:
		return e.Remove(a.Path)
	case KindDelete:
		return e.Delete(a.Path)
	case KindRestore:
		return e.Restore(a.Path)
	case KindClean:
		return e.Clean()
	}
	return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownAction, a.Kind)
}
