//go:build !windows && !darwin && !linux

package ui

// revealFolder is a no-op on platforms without a known file manager hook
func revealFolder(path string) error {
	return nil
}
