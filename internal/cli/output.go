package cli

import (
	"fmt"
	"strings"

	"github.com/babarot/wrm/internal/trash"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	verbStyle = color.New(color.FgRed, color.Bold).SprintFunc()
	doneStyle = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnStyle = color.New(color.FgYellow, color.Bold).SprintFunc()
	dirStyle  = color.New(color.FgBlue).SprintFunc()
)

func title(kind trash.Kind) string {
	s := kind.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// promptFor renders the question asked before act, e.g.
// "Remove file '/tmp/a.txt'? [y/N] "
func promptFor(act trash.Action) string {
	return fmt.Sprintf("%s %s '%s'? [y/N] ", verbStyle(title(act.Kind)), act.Type, act.Path)
}

// report prints what an applied action did unless quiet is set. A restore
// that matched nothing is always reported.
func (c CLI) report(out trash.Outcome) {
	if out.Kind == trash.KindRestore && out.Restore == trash.RestoreNotFound {
		fmt.Fprintf(c.stderr, "%s '%s' not found in trash\n", warnStyle("Skipped"), out.Path)
		return
	}
	if c.quiet() {
		return
	}

	switch out.Kind {
	case trash.KindRemove:
		fmt.Fprintf(c.stderr, "%s %s '%s'\n", doneStyle("Removed"), out.Type, out.Path)
	case trash.KindDelete:
		fmt.Fprintf(c.stderr, "%s %s '%s'\n", doneStyle("Deleted"), out.Type, out.Path)
	case trash.KindRestore:
		fmt.Fprintf(c.stderr, "%s %s '%s' to '%s'\n", doneStyle("Restored"), out.Type, out.TrashPath, out.Entry.OriginalPath)
	case trash.KindClean:
		fmt.Fprintf(c.stderr, "%s trash (%d entries, %s)\n", doneStyle("Cleaned"), out.Count, humanize.Bytes(uint64(out.Size)))
	}
}
