package model

import "sort"

// ParentName is the display name of the synthetic parent-directory entry.
const ParentName = ".."

// Kind classifies a directory listing row
type Kind int

const (
	KindParent Kind = iota
	KindDir
	KindFile
)

// String returns a short label for the kind
func (k Kind) String() string {
	switch k {
	case KindParent:
		return "parent"
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Entry represents one row of a remote directory listing.
// Entries are immutable once produced; a refresh replaces the whole slice.
type Entry struct {
	Name string
	Kind Kind
	Size int64 // bytes, meaningful for files only
}

// IsDir reports whether the entry can be descended into
func (e Entry) IsDir() bool {
	return e.Kind == KindDir || e.Kind == KindParent
}

// rank orders parent links before directories before files
func (e Entry) rank() int {
	switch e.Kind {
	case KindParent:
		return 0
	case KindDir:
		return 1
	default:
		return 2
	}
}

// Sort orders entries directories-before-files, each group by name ascending
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		ri, rj := entries[i].rank(), entries[j].rank()
		if ri != rj {
			return ri < rj
		}
		return entries[i].Name < entries[j].Name
	})
}

// WithParent prepends the ".." entry unless the listing is for the root path
func WithParent(entries []Entry, atRoot bool) []Entry {
	if atRoot {
		return entries
	}
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, Entry{Name: ParentName, Kind: KindParent})
	return append(out, entries...)
}
