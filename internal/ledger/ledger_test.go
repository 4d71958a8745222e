package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAddPreservesOrder(t *testing.T) {
	l := New()
	require.True(t, l.IsEmpty())

	a := Entry{OriginalPath: "/abs/a.txt", TrashPath: "/trash/a.txt"}
	b := Entry{OriginalPath: "/abs/b.txt", TrashPath: "/trash/b.txt"}
	l.Add(a)
	l.Add(b)
	l.Add(a)

	assert.Equal(t, []Entry{a, b, a}, l.Entries())
	assert.Equal(t, 3, l.Len())
}

func TestLedgerRemoveDropsAllMatches(t *testing.T) {
	a := Entry{OriginalPath: "/abs/a.txt", TrashPath: "/trash/a.txt"}
	b := Entry{OriginalPath: "/abs/b.txt", TrashPath: "/trash/b.txt"}
	// same trash path, different origin: not structurally equal
	c := Entry{OriginalPath: "/other/a.txt", TrashPath: "/trash/a.txt"}

	l := &Ledger{Files: []Entry{a, b, a, c}}
	n := l.Remove(a)

	assert.Equal(t, 2, n)
	assert.Equal(t, []Entry{b, c}, l.Entries())

	assert.Zero(t, l.Remove(a))
	assert.Equal(t, []Entry{b, c}, l.Entries())
}

func TestLedgerFindByTrashPathPicksMostRecent(t *testing.T) {
	first := Entry{OriginalPath: "/one/a.txt", TrashPath: "/trash/a.txt"}
	second := Entry{OriginalPath: "/two/a.txt", TrashPath: "/trash/a.txt"}
	other := Entry{OriginalPath: "/abs/b.txt", TrashPath: "/trash/b.txt"}

	l := &Ledger{Files: []Entry{first, other, second}}

	got, ok := l.FindByTrashPath("/trash/a.txt")
	require.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = l.FindByTrashPath("/trash/missing")
	assert.False(t, ok)
}

func TestLedgerPrune(t *testing.T) {
	a := Entry{OriginalPath: "/abs/a", TrashPath: "/trash/a"}
	b := Entry{OriginalPath: "/abs/b", TrashPath: "/trash/b"}
	c := Entry{OriginalPath: "/abs/c", TrashPath: "/trash/c"}
	l := &Ledger{Files: []Entry{a, b, c}}

	dropped := l.Prune(func(e Entry) bool { return e == b })
	assert.Equal(t, []Entry{b}, dropped)
	assert.Equal(t, []Entry{a, c}, l.Entries())

	assert.Nil(t, l.Prune(func(Entry) bool { return false }))
	assert.Equal(t, []Entry{a, c}, l.Entries())
}
