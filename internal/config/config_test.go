package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SFTPDIVE_PORT", "SFTPDIVE_PASSWORD", "SFTPDIVE_DEST",
		"SFTPDIVE_CONCURRENCY", "SFTPDIVE_LAUNCH_DELAY",
		"SFTPDIVE_DEPTH_LIMIT", "SFTPDIVE_DEBUG", "SFTPDIVE_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != 22 {
		t.Errorf("Port: got %d, want 22", cfg.Port)
	}
	if cfg.DestDir != "." {
		t.Errorf("DestDir: got %q, want .", cfg.DestDir)
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent: got %d, want 4", cfg.MaxConcurrent)
	}
	if cfg.LaunchDelay != 100*time.Millisecond {
		t.Errorf("LaunchDelay: got %v, want 100ms", cfg.LaunchDelay)
	}
	if cfg.MaxDepth != 64 {
		t.Errorf("MaxDepth: got %d, want 64", cfg.MaxDepth)
	}
	if cfg.Debug {
		t.Error("Debug: got true, want false")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SFTPDIVE_PORT", "2222")
	t.Setenv("SFTPDIVE_DEST", "/tmp/drops")
	t.Setenv("SFTPDIVE_CONCURRENCY", "8")
	t.Setenv("SFTPDIVE_LAUNCH_DELAY", "250ms")
	t.Setenv("SFTPDIVE_DEBUG", "true")

	cfg := Load()
	if cfg.Port != 2222 {
		t.Errorf("Port: got %d, want 2222", cfg.Port)
	}
	if cfg.DestDir != "/tmp/drops" {
		t.Errorf("DestDir: got %q", cfg.DestDir)
	}
	if cfg.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent: got %d, want 8", cfg.MaxConcurrent)
	}
	if cfg.LaunchDelay != 250*time.Millisecond {
		t.Errorf("LaunchDelay: got %v, want 250ms", cfg.LaunchDelay)
	}
	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SFTPDIVE_PORT", "not-a-port")
	t.Setenv("SFTPDIVE_LAUNCH_DELAY", "soon")
	t.Setenv("SFTPDIVE_DEBUG", "maybe")

	cfg := Load()
	if cfg.Port != 22 {
		t.Errorf("malformed port should fall back to 22, got %d", cfg.Port)
	}
	if cfg.LaunchDelay != 100*time.Millisecond {
		t.Errorf("malformed delay should fall back to 100ms, got %v", cfg.LaunchDelay)
	}
	if cfg.Debug {
		t.Error("malformed bool should fall back to false")
	}
}
