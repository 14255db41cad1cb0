package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/sftpdive/internal/browse"
	"github.com/lumipallolabs/sftpdive/internal/cache"
	"github.com/lumipallolabs/sftpdive/internal/logging"
	"github.com/lumipallolabs/sftpdive/internal/model"
	"github.com/lumipallolabs/sftpdive/internal/remote"
	"github.com/lumipallolabs/sftpdive/internal/stats"
	"github.com/lumipallolabs/sftpdive/internal/transfer"
)

// eventDrainMax bounds how many queued worker events one Update folds in
// before rendering again.
const eventDrainMax = 64

// listingMsg carries a fetched directory listing
type listingMsg struct {
	path    string
	entries []model.Entry
}

// listingErrMsg is sent when a listing request fails
type listingErrMsg struct {
	path string
	err  error
}

// transferEventMsg carries one worker progress event
type transferEventMsg struct {
	ev transfer.Event
}

// discoverDoneMsg is sent when recursive enumeration finishes
type discoverDoneMsg struct {
	dir   string
	files []transfer.FileRef
	err   error
}

// previewMsg carries the fetched head of a file for previewing
type previewMsg struct {
	name string
	size int64
	data []byte
	err  error
}

// Options carries the collaborators the application model is built around.
type Options struct {
	Port      remote.Port
	Orch      *transfer.Orchestrator
	Stats     *stats.Manager
	Target    string // user@host shown in the header
	StartPath string
	DestDir   string
	MaxDepth  int
}

// App is the main application model
type App struct {
	// Components
	header   Header
	list     ListPanel
	logPanel LogPanel
	bar      TransferBar
	help     HelpOverlay
	preview  PreviewOverlay
	spin     spinner.Model

	// State
	keys    KeyMap
	browser *browse.Browser
	tracker *transfer.Tracker

	// Collaborators
	port     remote.Port
	orch     *transfer.Orchestrator
	stats    *stats.Manager
	listings *cache.Listings
	destDir  string
	maxDepth int

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	app := App{
		header:   NewHeader(opts.Target),
		list:     NewListPanel(),
		logPanel: NewLogPanel(),
		bar:      NewTransferBar(),
		help:     NewHelpOverlay(),
		preview:  NewPreviewOverlay(),
		spin:     sp,
		keys:     DefaultKeyMap(),
		browser:  browse.New(opts.StartPath),
		tracker:  transfer.NewTracker(),
		port:     opts.Port,
		orch:     opts.Orch,
		stats:    opts.Stats,
		listings: cache.New(),
		destDir:  opts.DestDir,
		maxDepth: opts.MaxDepth,
	}

	if opts.Stats != nil {
		app.header.SetDownloadStats(0, opts.Stats.BytesLifetime())
	}
	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("SFTPDIVE"),
		a.refresh(),
		a.waitForEvent(),
		a.spin.Tick,
	)
}

// refresh marks the current path pending and returns the fetch command
func (a *App) refresh() tea.Cmd {
	a.browser.BeginRefresh()
	path := a.browser.Path()
	port := a.port
	return func() tea.Msg {
		entries, err := port.List(path)
		if err != nil {
			return listingErrMsg{path: path, err: err}
		}
		return listingMsg{path: path, entries: entries}
	}
}

// navigate loads the current path, serving it from the listings cache when
// possible and fetching otherwise.
func (a *App) navigate() tea.Cmd {
	if entries, ok := a.listings.Get(a.browser.Path()); ok {
		a.browser.BeginRefresh()
		a.browser.ApplyListing(entries)
		a.list.Reset()
		return nil
	}
	return tea.Batch(a.refresh(), a.spin.Tick)
}

// waitForEvent blocks on the worker event stream and hands the next event
// to Update. It is re-armed after every received event.
func (a App) waitForEvent() tea.Cmd {
	events := a.orch.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return transferEventMsg{ev: ev}
	}
}

// discover enumerates a remote directory in the background
func (a App) discover(dir string) tea.Cmd {
	port := a.port
	limits := transfer.Limits{MaxDepth: a.maxDepth}
	return func() tea.Msg {
		files, err := transfer.Discover(port, dir, limits)
		return discoverDoneMsg{dir: dir, files: files, err: err}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case listingMsg:
		a.listings.Put(msg.path, msg.entries)
		if msg.path != a.browser.Path() {
			// Response for a directory the user already left
			return a, nil
		}
		a.browser.ApplyListing(msg.entries)
		a.list.Reset()
		return a, nil

	case listingErrMsg:
		logging.L().Error().Err(msg.err).Str("path", msg.path).Msg("listing failed")
		a.browser.ApplyError(msg.err)
		return a, nil

	case transferEventMsg:
		a.applyTransferEvent(msg.ev)
		// Fold in whatever else is already queued before rendering
	drain:
		for i := 0; i < eventDrainMax; i++ {
			select {
			case ev, ok := <-a.orch.Events():
				if !ok {
					break drain
				}
				a.applyTransferEvent(ev)
			default:
				break drain
			}
		}
		a.syncTransferStats()
		return a, a.waitForEvent()

	case discoverDoneMsg:
		if msg.err != nil {
			logging.L().Error().Err(msg.err).Str("dir", msg.dir).Msg("enumeration failed")
			a.browser.Logf("Error finding files in directory: %v", msg.err)
			return a, nil
		}
		a.browser.Logf("Found %d files to download.", len(msg.files))
		for _, task := range a.orch.DownloadAll(msg.files) {
			a.tracker.Track(task)
		}
		a.syncTransferStats()
		return a, a.spin.Tick

	case previewMsg:
		a.preview.Open(msg.name, msg.size, msg.data, msg.err)
		return a, nil

	case spinner.TickMsg:
		// Keep ticking only while something is pending or downloading
		if a.browser.Pending() || a.tracker.ActiveCount() > 0 {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// applyTransferEvent folds one worker event into the tracker and surfaces
// its log lines.
func (a *App) applyTransferEvent(ev transfer.Event) {
	if line := a.tracker.Apply(ev); line != "" {
		a.browser.Log(line)
	}
	if ev.Phase == transfer.PhaseCompleted && a.stats != nil {
		a.stats.AddDownload(ev.BytesDone)
	}
}

// syncTransferStats pushes tracker totals into the header
func (a *App) syncTransferStats() {
	_, sessionBytes := a.tracker.SessionTotals()
	lifetime := sessionBytes
	if a.stats != nil {
		lifetime = a.stats.BytesLifetime()
	}
	a.header.SetDownloadStats(sessionBytes, lifetime)
	a.header.SetActiveTransfers(a.tracker.ActiveCount())
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logging.L().Debug().Str("key", msg.String()).Msg("key pressed")

	// Always honor the interrupt, overlays included
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	// Help overlay takes precedence
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) {
			a.help.SetVisible(false)
		}
		return a, nil
	}

	// Preview overlay: close keys dismiss it, the rest scrolls
	if a.preview.IsVisible() {
		if key.Matches(msg, a.keys.Preview) || key.Matches(msg, a.keys.Quit) {
			a.preview.Close()
			return a, nil
		}
		var cmd tea.Cmd
		a.preview, cmd = a.preview.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.browser.MoveUp()
		a.list.EnsureVisible(a.browser.Cursor())
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.browser.MoveDown()
		a.list.EnsureVisible(a.browser.Cursor())
		return a, nil

	case key.Matches(msg, a.keys.Top):
		a.browser.JumpTop()
		a.list.EnsureVisible(a.browser.Cursor())
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		a.browser.JumpBottom()
		a.list.EnsureVisible(a.browser.Cursor())
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.browser.Ascend() {
			cmd := a.navigate()
			return a, cmd
		}
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		if a.browser.Pending() {
			return a, nil
		}
		a.listings.Invalidate(a.browser.Path())
		return a, tea.Batch(a.refresh(), a.spin.Tick)

	case key.Matches(msg, a.keys.DownloadDir):
		return a.activate(true)

	case key.Matches(msg, a.keys.Enter):
		return a.activate(false)

	case key.Matches(msg, a.keys.Preview):
		return a.previewSelected()

	case key.Matches(msg, a.keys.Reveal):
		dir := a.destDir
		if dir == "" {
			dir = "."
		}
		if err := revealFolder(dir); err != nil {
			a.browser.Logf("Error opening folder: %v", err)
		} else {
			a.browser.Logf("Opening '%s' in the file manager", dir)
		}
		return a, nil
	}

	return a, nil
}

// activate acts on the selected entry
func (a App) activate(recursive bool) (tea.Model, tea.Cmd) {
	action, entry := a.browser.Activate(recursive)
	switch action {
	case browse.ActionRefresh:
		cmd := a.navigate()
		return a, cmd

	case browse.ActionDownloadFile:
		task := a.orch.DownloadFile(a.browser.EntryPath(entry), entry.Name, entry.Size)
		a.tracker.Track(task)
		a.syncTransferStats()
		return a, a.spin.Tick

	case browse.ActionDownloadDir:
		a.browser.Logf("Queueing directory '%s' for download...", entry.Name)
		return a, a.discover(a.browser.EntryPath(entry))
	}
	return a, nil
}

// previewSelected fetches the head of the selected file
func (a App) previewSelected() (tea.Model, tea.Cmd) {
	entry, ok := a.browser.Selected()
	if !ok || entry.IsDir() {
		return a, nil
	}

	name := entry.Name
	size := entry.Size
	path := a.browser.EntryPath(entry)
	port := a.port
	return a, func() tea.Msg {
		stream, err := port.Open(path)
		if err != nil {
			return previewMsg{name: name, size: size, err: err}
		}
		defer stream.Close()

		buf := make([]byte, PreviewBytes)
		n, err := io.ReadFull(stream, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return previewMsg{name: name, size: size, err: err}
		}
		return previewMsg{name: name, size: size, data: buf[:n]}
	}
}

// quit flushes persistent state and stops the program. Running downloads are
// abandoned in place; partial files stay on disk.
func (a App) quit() (tea.Model, tea.Cmd) {
	if a.stats != nil {
		_ = a.stats.Close()
	}
	return a, tea.Quit
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	headerHeight := 1
	statusHeight := 1
	helpBarHeight := 1

	listHeight := a.height - headerHeight - LogPanelHeight - GaugeHeight - statusHeight - helpBarHeight
	if listHeight < 3 {
		listHeight = 3
	}

	a.header.SetWidth(a.width)
	a.list.SetSize(a.width, listHeight)
	a.logPanel.SetWidth(a.width)
	a.bar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.preview.SetSize(a.width, a.height)
	a.list.EnsureVisible(a.browser.Cursor())
}

// statusBar renders the current path line
func (a App) statusBar() string {
	line := fmt.Sprintf("Path: %s", a.browser.Path())
	if a.browser.Pending() {
		line = a.spin.View() + " " + line
	}
	return StatusBarStyle.Width(a.width).MaxHeight(1).Render(line)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Connecting..."
	}

	if a.help.IsVisible() {
		return a.help.View()
	}
	if a.preview.IsVisible() {
		return a.preview.View()
	}

	sections := []string{
		a.header.View(),
		a.list.View(a.browser.Items(), a.browser.Cursor()),
		a.logPanel.View(a.browser.Logs()),
		a.bar.View(a.tracker.Visible()),
		a.statusBar(),
		HelpBar(a.width),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
