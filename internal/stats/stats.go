// Package stats persists lifetime download statistics across sessions.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Stats holds persistent statistics
type Stats struct {
	FilesLifetime int64  `json:"files_lifetime"`
	BytesLifetime int64  `json:"bytes_lifetime"`
	LastTarget    string `json:"last_target,omitempty"` // user@host of the previous session
}

// Manager handles loading and saving stats
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a new stats manager
func NewManager() *Manager {
	return &Manager{
		path:         defaultPath(),
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// defaultPath returns the default stats file path
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sftpdive-stats.json"
	}
	return filepath.Join(home, ".sftpdive", "stats.json")
}

// Load loads stats from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No stats file yet, start fresh
			m.stats = Stats{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.stats)
}

// Save saves stats to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves stats without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	// Ensure directory exists
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// scheduleSaveLocked arms a debounced background save (caller must hold lock)
func (m *Manager) scheduleSaveLocked() {
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// FilesLifetime returns the lifetime downloaded file count
func (m *Manager) FilesLifetime() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.FilesLifetime
}

// BytesLifetime returns the lifetime downloaded byte count
func (m *Manager) BytesLifetime() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.BytesLifetime
}

// LastTarget returns the user@host from the previous session
func (m *Manager) LastTarget() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.LastTarget
}

// SetLastTarget records the connection target and schedules a debounced save
func (m *Manager) SetLastTarget(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.LastTarget == target {
		return
	}

	m.stats.LastTarget = target
	m.scheduleSaveLocked()
}

// AddDownload counts one completed download and schedules a debounced save
func (m *Manager) AddDownload(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.FilesLifetime++
	m.stats.BytesLifetime += bytes
	m.scheduleSaveLocked()
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
