package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
)

// PreviewBytes is how much of the file head is fetched for a preview
const PreviewBytes = 4096

// PreviewOverlay displays the head of a remote file in a centered overlay.
// The file type is detected from magic numbers, and only textual content is
// shown; anything else gets a type badge and a placeholder.
type PreviewOverlay struct {
	visible  bool
	width    int
	height   int
	vp       viewport.Model
	name     string
	fileSize int64
	kind     string
	err      error
}

// NewPreviewOverlay creates a new preview overlay component
func NewPreviewOverlay() PreviewOverlay {
	return PreviewOverlay{vp: viewport.New(0, 0)}
}

// SetSize sets the dimensions the overlay centers itself in
func (p *PreviewOverlay) SetSize(w, h int) {
	p.width = w
	p.height = h

	boxW, boxH := p.boxSize()
	p.vp.Width = boxW - 4
	p.vp.Height = boxH - 5 // borders, padding, title and meta lines
	if p.vp.Height < 1 {
		p.vp.Height = 1
	}
}

func (p PreviewOverlay) boxSize() (int, int) {
	w := p.width * 3 / 4
	h := p.height * 3 / 4
	if w < 24 {
		w = 24
	}
	if h < 8 {
		h = 8
	}
	return w, h
}

// Open fills the overlay with a fetched file head and shows it
func (p *PreviewOverlay) Open(name string, size int64, data []byte, err error) {
	p.visible = true
	p.name = name
	p.fileSize = size
	p.err = err
	p.kind = ""
	if err != nil {
		p.vp.SetContent("")
		return
	}

	mtype := mimetype.Detect(data)
	if ext := strings.TrimPrefix(mtype.Extension(), "."); ext != "" {
		p.kind = strings.ToUpper(ext)
	}
	if strings.HasPrefix(mtype.String(), "text/") {
		p.vp.SetContent(string(data))
	} else {
		p.vp.SetContent("Binary file, preview not available.")
	}
	p.vp.GotoTop()
}

// Close hides the overlay
func (p *PreviewOverlay) Close() {
	p.visible = false
}

// IsVisible returns whether the preview overlay is visible
func (p PreviewOverlay) IsVisible() bool {
	return p.visible
}

// Update forwards scrolling keys to the viewport
func (p PreviewOverlay) Update(msg tea.Msg) (PreviewOverlay, tea.Cmd) {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

// View renders the preview overlay
func (p PreviewOverlay) View() string {
	if !p.visible {
		return ""
	}

	boxW, boxH := p.boxSize()

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1).
		Width(boxW - 2).
		Height(boxH - 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	metaStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Preview: " + p.name))
	content.WriteString("\n")

	if p.err != nil {
		content.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", p.err)))
	} else {
		meta := FormatSize(p.fileSize)
		if p.kind != "" {
			meta = p.kind + " · " + meta
		}
		content.WriteString(metaStyle.Render(meta))
		content.WriteString("\n")
		content.WriteString(p.vp.View())
	}

	box := boxStyle.Render(content.String())
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}
