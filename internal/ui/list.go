package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

// ListPanel displays the remote directory listing. The cursor lives in the
// navigation state; the panel only tracks scrolling and dimensions.
type ListPanel struct {
	width  int
	height int
	offset int // scroll offset
}

// NewListPanel creates a new list panel
func NewListPanel() ListPanel {
	return ListPanel{}
}

// SetSize sets the panel dimensions
func (l *ListPanel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset scrolls back to the top for a fresh listing
func (l *ListPanel) Reset() {
	l.offset = 0
}

// EnsureVisible scrolls so the cursor row is on screen
func (l *ListPanel) EnsureVisible(cursor int) {
	if cursor < 0 {
		return
	}
	if cursor < l.offset {
		l.offset = cursor
	}
	maxVisible := l.maxVisible()
	if cursor >= l.offset+maxVisible {
		l.offset = cursor - maxVisible + 1
	}
}

func (l ListPanel) maxVisible() int {
	maxVisible := l.height - 2 // account for borders
	if maxVisible < 1 {
		maxVisible = 1
	}
	return maxVisible
}

// rowLabel renders an entry the way the listing names it: directories get a
// trailing slash, the parent link is always "../".
func rowLabel(e model.Entry) string {
	switch e.Kind {
	case model.KindParent:
		return "../"
	case model.KindDir:
		return e.Name + "/"
	default:
		return e.Name
	}
}

// View renders the listing with the cursor row highlighted
func (l ListPanel) View(items []model.Entry, cursor int) string {
	var lines []string
	maxVisible := l.maxVisible()
	maxW := l.width - 4 // borders and padding

	for i := l.offset; i < len(items) && len(lines) < maxVisible; i++ {
		e := items[i]
		text := rowLabel(e)

		// Right-align file sizes inside the panel
		if e.Kind == model.KindFile {
			size := FormatSize(e.Size)
			gap := maxW - lipgloss.Width(text) - lipgloss.Width(size)
			if gap < 1 {
				gap = 1
			}
			text += strings.Repeat(" ", gap) + size
		}

		var itemStyle lipgloss.Style
		switch {
		case i == cursor:
			itemStyle = ListItemSelected.Width(maxW).MaxWidth(maxW)
		case e.Kind == model.KindDir:
			itemStyle = lipgloss.NewStyle().Foreground(ColorDir).MaxWidth(maxW)
		case e.Kind == model.KindParent:
			itemStyle = lipgloss.NewStyle().Foreground(ColorParent).MaxWidth(maxW)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(ColorFile).MaxWidth(maxW)
		}
		lines = append(lines, itemStyle.Render(text))
	}

	if len(items) == 0 {
		empty := lipgloss.NewStyle().Foreground(ColorMuted).Render("(empty)")
		lines = append(lines, empty)
	}

	content := strings.Join(lines, "\n")
	return ListPanelStyle.Width(l.width - 2).Height(l.height - 2).Render(content)
}
