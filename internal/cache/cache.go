// Package cache keeps remote directory listings fetched during the session,
// so re-entering a directory the user just left renders without a round trip.
package cache

import (
	"sync"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

// Listings is a path-keyed store of display-ready listings
type Listings struct {
	mu     sync.RWMutex
	byPath map[string][]model.Entry
}

// New creates an empty listing cache
func New() *Listings {
	return &Listings{byPath: make(map[string][]model.Entry)}
}

// Put stores the listing for a path, replacing any previous one.
// The slice is copied; callers keep ownership of their argument.
func (c *Listings) Put(path string, entries []model.Entry) {
	cp := make([]model.Entry, len(entries))
	copy(cp, entries)

	c.mu.Lock()
	c.byPath[path] = cp
	c.mu.Unlock()
}

// Get returns a copy of the cached listing for a path, if present
func (c *Listings) Get(path string) ([]model.Entry, bool) {
	c.mu.RLock()
	entries, ok := c.byPath[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	cp := make([]model.Entry, len(entries))
	copy(cp, entries)
	return cp, true
}

// Invalidate drops the cached listing for one path
func (c *Listings) Invalidate(path string) {
	c.mu.Lock()
	delete(c.byPath, path)
	c.mu.Unlock()
}

// InvalidateAll empties the cache
func (c *Listings) InvalidateAll() {
	c.mu.Lock()
	c.byPath = make(map[string][]model.Entry)
	c.mu.Unlock()
}

// Len returns the number of cached paths
func (c *Listings) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}
