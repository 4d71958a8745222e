package log

import (
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	Level  = charmlog.Level
	Styles = charmlog.Styles
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

// ParseLevel converts a config level name ("debug", "info", ...) to a Level
func ParseLevel(s string) (Level, error) {
	return charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}
