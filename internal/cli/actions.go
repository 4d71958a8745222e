package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/wrm/internal/trash"
	"github.com/babarot/wrm/internal/utils/fs"
	"github.com/dustin/go-humanize"
)

// each plans, confirms and applies kind for every path in order. A declined
// prompt skips the path; any other error stops the batch.
func (c CLI) each(kind trash.Kind, paths []string) error {
	slog.Debug("cli.each started", "kind", kind, "paths", len(paths))
	defer slog.Debug("cli.each finished", "kind", kind)

	if len(paths) == 0 {
		return ErrIncorrectArguments
	}

	for _, path := range paths {
		act, err := c.engine.Plan(kind, path)
		if err != nil {
			return err
		}

		// nothing to ask about when a restore matches nothing
		if !act.Unmatched {
			if err := c.confirm(promptFor(act)); err != nil {
				if errors.Is(err, ErrCanceled) {
					fmt.Fprintln(c.stderr, "Canceled")
					slog.Debug("canceled by user", "action", act.String())
					continue
				}
				return err
			}
		}

		out, err := c.engine.Apply(act)
		if err != nil {
			return err
		}
		c.report(out)
	}
	return nil
}

// Clean purges the whole trash after listing it and asking once.
func (c CLI) Clean() error {
	act, err := c.engine.Plan(trash.KindClean, "")
	if err != nil {
		return err
	}
	if act.Empty() {
		fmt.Fprintln(c.stderr, "There are no files or directories in trash")
		return nil
	}

	if !c.noninteractive() {
		c.printItems(act.Items)
	}
	prompt := fmt.Sprintf("%s these files and directories (%s)? [y/N] ",
		verbStyle("Delete"), humanize.Bytes(uint64(act.Size)))
	if err := c.confirm(prompt); err != nil {
		if errors.Is(err, ErrCanceled) {
			fmt.Fprintln(c.stderr, "Canceled")
			return nil
		}
		return err
	}

	out, err := c.engine.Apply(act)
	if err != nil {
		return err
	}
	c.report(out)
	return nil
}

// List prints every trashed file and directory that is still on disk.
func (c CLI) List() error {
	items, err := c.engine.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.stderr, "There are no files or directories in trash")
		return nil
	}
	c.printItems(items)
	return nil
}

func (c CLI) printItems(items []trash.Item) {
	for _, item := range items {
		name := item.Name
		if item.Type == fs.TypeDirectory {
			name = dirStyle(name)
		}
		fmt.Fprintf(c.stdout, "%s (%s) %s\n", name, item.OriginalPath, item.Type)
	}
}
