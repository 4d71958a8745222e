package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCanceled is returned by confirm when the user did not answer yes
var ErrCanceled = errors.New("canceled")

// confirm asks message on stdout and waits for an answer. Only "y" and
// "yes" accept; noninteractive mode accepts without asking.
func (c CLI) confirm(message string) error {
	if c.noninteractive() {
		return nil
	}

	fmt.Fprint(c.stdout, message)
	line, err := c.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	default:
		return ErrCanceled
	}
}
