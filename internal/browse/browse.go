// Package browse holds the navigation state for the remote listing: the
// current path, the ordered item list with its selection cursor, and the
// activity log. It performs no I/O itself; activations tell the interaction
// loop what to fetch or download.
package browse

import (
	"fmt"
	"path"
	"strings"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

// LogCap bounds the activity log ring
const LogCap = 200

// Action is what an activation asks the interaction loop to do.
type Action int

const (
	// ActionNone means the activation had no effect.
	ActionNone Action = iota
	// ActionRefresh means the path changed and a new listing is needed.
	ActionRefresh
	// ActionDownloadFile requests a download of the returned file entry.
	ActionDownloadFile
	// ActionDownloadDir requests a recursive download of the returned
	// directory entry.
	ActionDownloadDir
)

// Browser is the navigation state machine. It is owned by the interaction
// loop and never touched by workers.
type Browser struct {
	segments []string
	items    []model.Entry
	cursor   int
	pending  bool
	logs     []string
}

// New creates a browser positioned at start, which must be an absolute
// remote path. Anything else lands at the root.
func New(start string) *Browser {
	b := &Browser{segments: splitPath(start)}
	b.Log("App initialized")
	return b
}

func splitPath(p string) []string {
	if !path.IsAbs(p) {
		return nil
	}
	var segs []string
	for _, s := range strings.Split(path.Clean(p), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Path returns the current remote directory
func (b *Browser) Path() string {
	return "/" + strings.Join(b.segments, "/")
}

// AtRoot reports whether the current directory is the filesystem root
func (b *Browser) AtRoot() bool {
	return len(b.segments) == 0
}

// EntryPath returns the remote path of an entry in the current directory
func (b *Browser) EntryPath(e model.Entry) string {
	return path.Join(b.Path(), e.Name)
}

// Items returns the current listing. Callers must not mutate it.
func (b *Browser) Items() []model.Entry {
	return b.items
}

// Cursor returns the selected index, or -1 when the listing is empty
func (b *Browser) Cursor() int {
	if len(b.items) == 0 {
		return -1
	}
	return b.cursor
}

// Selected returns the entry under the cursor
func (b *Browser) Selected() (model.Entry, bool) {
	if len(b.items) == 0 {
		return model.Entry{}, false
	}
	return b.items[b.cursor], true
}

// Pending reports whether a listing request is in flight
func (b *Browser) Pending() bool {
	return b.pending
}

// MoveUp moves the cursor up one entry, wrapping at the top
func (b *Browser) MoveUp() {
	if len(b.items) == 0 {
		return
	}
	b.cursor--
	if b.cursor < 0 {
		b.cursor = len(b.items) - 1
	}
}

// MoveDown moves the cursor down one entry, wrapping at the bottom
func (b *Browser) MoveDown() {
	if len(b.items) == 0 {
		return
	}
	b.cursor++
	if b.cursor >= len(b.items) {
		b.cursor = 0
	}
}

// JumpTop moves the cursor to the first entry
func (b *Browser) JumpTop() {
	b.cursor = 0
}

// JumpBottom moves the cursor to the last entry
func (b *Browser) JumpBottom() {
	if len(b.items) > 0 {
		b.cursor = len(b.items) - 1
	}
}

// Ascend pops one path segment without going through the parent link. It
// reports whether the path changed and a refresh is needed.
func (b *Browser) Ascend() bool {
	if b.pending || b.AtRoot() {
		return false
	}
	b.segments = b.segments[:len(b.segments)-1]
	return true
}

// Activate acts on the entry under the cursor. Parent links ascend and
// directories descend, both returning ActionRefresh with the path already
// updated; the caller then calls BeginRefresh and fetches the listing.
// Files request a download regardless of the modifier; directories request
// a recursive download when recursive is set. Activations are ignored while
// a refresh is in flight because the listing no longer matches the path.
func (b *Browser) Activate(recursive bool) (Action, model.Entry) {
	if b.pending {
		return ActionNone, model.Entry{}
	}
	e, ok := b.Selected()
	if !ok {
		return ActionNone, model.Entry{}
	}

	switch e.Kind {
	case model.KindParent:
		if len(b.segments) > 0 {
			b.segments = b.segments[:len(b.segments)-1]
		}
		return ActionRefresh, e
	case model.KindDir:
		if recursive {
			return ActionDownloadDir, e
		}
		b.segments = append(b.segments, e.Name)
		return ActionRefresh, e
	default:
		return ActionDownloadFile, e
	}
}

// BeginRefresh marks a listing request for the current path as in flight
func (b *Browser) BeginRefresh() {
	b.pending = true
	b.Logf("Fetching files from '%s'...", b.Path())
}

// ApplyListing installs a fetched listing, prefixing the parent link below
// the root and resetting the cursor to the first entry.
func (b *Browser) ApplyListing(entries []model.Entry) {
	b.pending = false
	b.items = model.WithParent(entries, b.AtRoot())
	b.cursor = 0
	b.Logf("Found %d items.", len(b.items))
}

// ApplyError records a failed listing request. The previous items and
// cursor stay in place.
func (b *Browser) ApplyError(err error) {
	b.pending = false
	b.Logf("Error fetching files: %v", err)
}

// Log appends a line to the activity ring, dropping the oldest past LogCap
func (b *Browser) Log(line string) {
	b.logs = append(b.logs, line)
	if len(b.logs) > LogCap {
		b.logs = b.logs[len(b.logs)-LogCap:]
	}
}

// Logf appends a formatted line to the activity ring
func (b *Browser) Logf(format string, args ...interface{}) {
	b.Log(fmt.Sprintf(format, args...))
}

// Logs returns the activity ring, oldest first. Callers must not mutate it.
func (b *Browser) Logs() []string {
	return b.logs
}
