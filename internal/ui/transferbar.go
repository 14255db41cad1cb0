package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/lumipallolabs/sftpdive/internal/transfer"
)

// GaugeHeight is the fixed height of the transfer gauge area, borders
// included.
const GaugeHeight = 4

// TransferBar renders the currently visible download as a progress gauge
type TransferBar struct {
	bar   progress.Model
	width int
}

// NewTransferBar creates a new transfer gauge
func NewTransferBar() TransferBar {
	return TransferBar{
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
		),
	}
}

// SetWidth sets the gauge width
func (t *TransferBar) SetWidth(w int) {
	t.width = w
	t.bar.Width = w - 4
	if t.bar.Width < 1 {
		t.bar.Width = 1
	}
}

// View renders the gauge for the visible task. The area keeps its size when
// nothing is downloading so the layout does not jump.
func (t TransferBar) View(task *transfer.Task) string {
	if task == nil {
		return GaugePanelStyle.Width(t.width - 2).Height(GaugeHeight - 2).Render("")
	}

	ratio := 0.0
	if task.TotalBytes > 0 {
		ratio = float64(task.BytesDone) / float64(task.TotalBytes)
	}
	if ratio > 1 {
		ratio = 1
	}

	label := fmt.Sprintf("Downloading '%s' %s/%s...",
		task.DisplayName, FormatSize(task.BytesDone), FormatSize(task.TotalBytes))

	content := GaugeLabelStyle.MaxWidth(t.width - 4).Render(label) + "\n" + t.bar.ViewAs(ratio)
	return GaugePanelStyle.Width(t.width - 2).Height(GaugeHeight - 2).Render(content)
}
