package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header displays the connection target and download statistics
type Header struct {
	target        string
	width         int
	active        int
	sessionBytes  int64
	lifetimeBytes int64
}

// NewHeader creates a new header component
func NewHeader(target string) Header {
	return Header{target: target}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// SetDownloadStats sets the session and lifetime downloaded byte counters
func (h *Header) SetDownloadStats(session, lifetime int64) {
	h.sessionBytes = session
	h.lifetimeBytes = lifetime
}

// SetActiveTransfers sets the number of running downloads
func (h *Header) SetActiveTransfers(n int) {
	h.active = n
}

// View renders the header
func (h Header) View() string {
	// App name with style
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")). // soft violet
		Bold(true).
		Render("SFTPDIVE")

	target := TargetStyle.Render(h.target)

	// Download stats (show in middle when either counter > 0)
	var downloaded string
	if h.sessionBytes > 0 || h.lifetimeBytes > 0 {
		label := lipgloss.NewStyle().Foreground(ColorMuted).Render("Downloaded: ")
		session := lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Render(FormatSize(h.sessionBytes) + " session")
		sep := lipgloss.NewStyle().Foreground(ColorMuted).Render(" | ")
		total := lipgloss.NewStyle().Foreground(ColorMuted).Render(FormatSize(h.lifetimeBytes) + " total")
		downloaded = label + session + sep + total
	}

	// Active transfer count on the right
	var activity string
	if h.active > 0 {
		activity = StatsStyle.Render(fmt.Sprintf("%d active", h.active))
	}

	appNameWidth := lipgloss.Width(appName)
	targetWidth := lipgloss.Width(target)
	downloadedWidth := lipgloss.Width(downloaded)
	activityWidth := lipgloss.Width(activity)

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")
	sepWidth := lipgloss.Width(sep)

	totalContent := appNameWidth + sepWidth + targetWidth + downloadedWidth + activityWidth + 4

	// For narrow terminals, progressively hide elements
	if h.width < totalContent && downloadedWidth > 0 {
		downloaded = ""
		downloadedWidth = 0
		totalContent = appNameWidth + sepWidth + targetWidth + activityWidth + 2
	}
	if h.width < totalContent && activityWidth > 0 {
		activity = ""
		totalContent = appNameWidth + sepWidth + targetWidth
	}

	remainingSpace := h.width - totalContent
	if remainingSpace < 2 {
		remainingSpace = 2
	}
	leftGap := remainingSpace / 2
	rightGap := remainingSpace - leftGap
	if leftGap < 1 {
		leftGap = 1
	}
	if rightGap < 1 {
		rightGap = 1
	}

	line := appName + sep + target + strings.Repeat(" ", leftGap) + downloaded + strings.Repeat(" ", rightGap) + activity

	return HeaderStyle.MaxHeight(1).Render(line)
}
