package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LogPanelHeight is the fixed height of the activity log area, borders
// included.
const LogPanelHeight = 7

// LogPanel renders the tail of the activity log
type LogPanel struct {
	width int
}

// NewLogPanel creates a new log panel
func NewLogPanel() LogPanel {
	return LogPanel{}
}

// SetWidth sets the panel width
func (l *LogPanel) SetWidth(w int) {
	l.width = w
}

// View renders the panel title and the newest log lines that fit, oldest
// first
func (l LogPanel) View(logs []string) string {
	maxLines := LogPanelHeight - 3 // borders and title
	start := len(logs) - maxLines
	if start < 0 {
		start = 0
	}

	maxW := l.width - 4
	lines := []string{LogTitleStyle.Render("Logs")}
	for _, msg := range logs[start:] {
		lines = append(lines, lipgloss.NewStyle().MaxWidth(maxW).Render(msg))
	}

	content := strings.Join(lines, "\n")
	return LogPanelStyle.Width(l.width - 2).Height(LogPanelHeight - 2).Render(content)
}
