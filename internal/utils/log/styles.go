package log

import (
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")) // Gray
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")) // Blue
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")) // Yellow
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")) // Red

	fatalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Background(lipgloss.Color("#000000")).
			Bold(true) // Red on Black, Bold

	levelStyles = map[Level]lipgloss.Style{
		DebugLevel: debugStyle,
		InfoLevel:  infoStyle,
		WarnLevel:  warnStyle,
		ErrorLevel: errorStyle,
		FatalLevel: fatalStyle,
	}
)

const levelWidth = 5

// DefaultStyles returns charm styles with fixed width, colored level labels
func DefaultStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for level, style := range levelStyles {
		label := strings.ToUpper(level.String())
		if len(label) < levelWidth {
			label += strings.Repeat(" ", levelWidth-len(label))
		}
		styles.Levels[level] = style.SetString(label)
	}
	return styles
}
