// Package ledger persists the record of trashed items and where they came from.
package ledger

import (
	"github.com/samber/lo"
)

// Entry pairs an original location with the location of the same object
// inside the trash directory.
type Entry struct {
	// OriginalPath is the absolute path the item lived at before trashing
	OriginalPath string `json:"path"`

	// TrashPath is the absolute path the item now lives at
	TrashPath string `json:"path_trash"`
}

// Ledger is the ordered collection of trashed items.
// Order is insertion order and is used as display order.
type Ledger struct {
	Files []Entry `json:"files"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{Files: []Entry{}}
}

// Entries returns the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	return l.Files
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.Files)
}

// IsEmpty reports whether the ledger has no entries.
func (l *Ledger) IsEmpty() bool {
	return len(l.Files) == 0
}

// Add appends e. Duplicates are not checked.
func (l *Ledger) Add(e Entry) {
	l.Files = append(l.Files, e)
}

// Remove drops every entry equal to e and returns how many were dropped.
func (l *Ledger) Remove(e Entry) int {
	before := len(l.Files)
	l.Files = lo.Reject(l.Files, func(f Entry, _ int) bool {
		return f == e
	})
	return before - len(l.Files)
}

// FindByTrashPath returns the most recently added entry whose trash path is
// trashPath.
func (l *Ledger) FindByTrashPath(trashPath string) (Entry, bool) {
	return l.FindLast(func(f Entry) bool {
		return f.TrashPath == trashPath
	})
}

// FindLast returns the most recently added entry satisfying pred.
func (l *Ledger) FindLast(pred func(Entry) bool) (Entry, bool) {
	e, _, ok := lo.FindLastIndexOf(l.Files, pred)
	return e, ok
}

// Prune drops every entry for which gone returns true and returns them.
func (l *Ledger) Prune(gone func(Entry) bool) []Entry {
	dropped := lo.Filter(l.Files, func(f Entry, _ int) bool {
		return gone(f)
	})
	if len(dropped) == 0 {
		return nil
	}
	l.Files = lo.Reject(l.Files, func(f Entry, _ int) bool {
		return gone(f)
	})
	return dropped
}
