package cli

import "testing"

func TestRootCmdArgCounts(t *testing.T) {
	cmd := NewRootCmd()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("zero args should be rejected")
	}
	if err := cmd.Args(cmd, []string{"u@h", "/srv", "extra"}); err == nil {
		t.Error("three args should be rejected")
	}
	if err := cmd.Args(cmd, []string{"u@h"}); err != nil {
		t.Errorf("one arg rejected: %v", err)
	}
	if err := cmd.Args(cmd, []string{"u@h", "/srv"}); err != nil {
		t.Errorf("two args rejected: %v", err)
	}
}

func TestFlagDefaultsComeFromEnvironment(t *testing.T) {
	t.Setenv("SFTPDIVE_CONCURRENCY", "9")
	t.Setenv("SFTPDIVE_DEST", "/tmp/drop")

	cmd := NewRootCmd()
	if got := cmd.Flags().Lookup("concurrency").DefValue; got != "9" {
		t.Errorf("concurrency default = %q, want %q", got, "9")
	}
	if got := cmd.Flags().Lookup("dest").DefValue; got != "/tmp/drop" {
		t.Errorf("dest default = %q, want %q", got, "/tmp/drop")
	}
}
