// Package config loads configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all tunables. Environment variables seed the values and
// command-line flags may override them afterwards.
type Config struct {
	// Connection
	Port     int
	Password string // non-interactive fallback, prompt is preferred

	// Downloads
	DestDir       string
	MaxConcurrent int
	LaunchDelay   time.Duration
	MaxDepth      int

	// Logging
	Debug   bool
	LogFile string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:          envInt("SFTPDIVE_PORT", 22),
		Password:      envOr("SFTPDIVE_PASSWORD", ""),
		DestDir:       envOr("SFTPDIVE_DEST", "."),
		MaxConcurrent: envInt("SFTPDIVE_CONCURRENCY", 4),
		LaunchDelay:   envDuration("SFTPDIVE_LAUNCH_DELAY", 100*time.Millisecond),
		MaxDepth:      envInt("SFTPDIVE_DEPTH_LIMIT", 64),
		Debug:         envBool("SFTPDIVE_DEBUG", false),
		LogFile:       envOr("SFTPDIVE_LOG_FILE", ""),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
