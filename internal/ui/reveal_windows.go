//go:build windows

package ui

import "os/exec"

// revealFolder opens the downloads directory in Windows Explorer
func revealFolder(path string) error {
	cmd := exec.Command("explorer.exe", path)
	return cmd.Start()
}
