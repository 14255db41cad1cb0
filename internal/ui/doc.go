// Package ui implements the terminal user interface for sftpdive using Bubbletea.
package ui
