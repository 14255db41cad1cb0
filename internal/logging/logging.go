// Package logging provides an optional structured log sink for debugging.
// The interactive screen owns the terminal, so log output goes to a file or
// nowhere, never to stdout or stderr while the program runs.
package logging

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

var (
	logger  = zerolog.Nop()
	sink    *os.File
	Enabled bool
)

// Setup opens the debug log file and swaps the no-op logger for a real one.
// Logging stays disabled unless enabled is true or the SFTPDIVE_DEBUG
// environment variable holds a true boolean, read with the same semantics
// the config package applies. An empty path falls back to debug.log in the
// working directory.
func Setup(path string, enabled bool) error {
	if !enabled && !debugEnv() {
		return nil
	}

	if path == "" {
		path = "debug.log"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	sink = f
	logger = zerolog.New(f).With().Timestamp().Logger()
	Enabled = true
	return nil
}

// debugEnv parses SFTPDIVE_DEBUG as a boolean; unset or malformed means off
func debugEnv() bool {
	v, err := strconv.ParseBool(os.Getenv("SFTPDIVE_DEBUG"))
	return err == nil && v
}

// L returns the package logger, a no-op unless Setup opened a sink
func L() *zerolog.Logger {
	return &logger
}

// Close flushes and closes the sink if one was opened
func Close() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}
