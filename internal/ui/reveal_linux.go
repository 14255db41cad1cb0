//go:build linux

package ui

import "os/exec"

// revealFolder opens the downloads directory with the desktop's file manager
func revealFolder(path string) error {
	cmd := exec.Command("xdg-open", path)
	return cmd.Start()
}
