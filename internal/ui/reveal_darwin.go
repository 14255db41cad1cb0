//go:build darwin

package ui

import "os/exec"

// revealFolder opens the downloads directory in Finder
func revealFolder(path string) error {
	cmd := exec.Command("open", path)
	return cmd.Start()
}
