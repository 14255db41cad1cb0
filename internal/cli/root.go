// Package cli wires flags, the password prompt, and the connect-then-run
// lifecycle around the TUI.
package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumipallolabs/sftpdive/internal/config"
	"github.com/lumipallolabs/sftpdive/internal/logging"
	"github.com/lumipallolabs/sftpdive/internal/remote"
	"github.com/lumipallolabs/sftpdive/internal/stats"
	"github.com/lumipallolabs/sftpdive/internal/transfer"
	"github.com/lumipallolabs/sftpdive/internal/ui"
)

// Version information, injected via ldflags at release build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// NewRootCmd builds the root command. Flag defaults are seeded from the
// environment-backed config, so flags win over env over built-in defaults.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "sftpdive <user@host[:port]> [remote-path]",
		Short: "Interactive SFTP browser and downloader",
		Long: `sftpdive opens a full-screen browser over an SFTP connection.
Navigate the remote tree, download single files with Enter, and whole
directories recursively with ctrl+d. The password is prompted before the
session starts; set SFTPDIVE_PASSWORD for non-interactive use.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, args)
		},
	}

	rootCmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "ssh port used when the target does not name one")
	rootCmd.Flags().StringVar(&cfg.DestDir, "dest", cfg.DestDir, "directory downloads are written to")
	rootCmd.Flags().IntVar(&cfg.MaxConcurrent, "concurrency", cfg.MaxConcurrent, "maximum simultaneous downloads")
	rootCmd.Flags().DurationVar(&cfg.LaunchDelay, "launch-delay", cfg.LaunchDelay, "pause between queued download launches")
	rootCmd.Flags().IntVar(&cfg.MaxDepth, "depth-limit", cfg.MaxDepth, "directory depth bound for recursive downloads")
	rootCmd.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "write debug logs to the log file")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "debug log path (default debug.log)")

	rootCmd.Version = Version + " (built " + BuildTime + ")"

	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) error {
	target, err := remote.ParseTarget(args[0])
	if err != nil {
		return err
	}
	// A port named in the target itself beats the flag.
	if !target.PortSet {
		target.Port = cfg.Port
	}

	startPath := "."
	if len(args) == 2 {
		startPath = args[1]
	}

	if err := logging.Setup(cfg.LogFile, cfg.Debug); err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer logging.Close()

	if err := os.MkdirAll(cfg.DestDir, 0755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	password := cfg.Password
	if password == "" {
		password, err = promptPassword(target.User)
		if err != nil {
			return err
		}
	}

	// Connection failures are fatal; everything after this point surfaces
	// errors inside the TUI instead.
	port, err := remote.Dial(target, password)
	if err != nil {
		return err
	}
	defer port.Close()

	if startPath == "." {
		wd, err := port.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		startPath = wd
	}

	st := stats.NewManager()
	if err := st.Load(); err != nil {
		logging.L().Warn().Err(err).Msg("download stats unavailable")
	}
	st.SetLastTarget(args[0])
	defer st.Close()

	app := ui.NewApp(ui.Options{
		Port:      port,
		Orch:      transfer.NewOrchestrator(port, cfg.DestDir, cfg.MaxConcurrent, cfg.LaunchDelay),
		Stats:     st,
		Target:    args[0],
		StartPath: startPath,
		DestDir:   cfg.DestDir,
		MaxDepth:  cfg.MaxDepth,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// promptPassword reads the ssh password without echo, the way scp asks.
func promptPassword(user string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; set SFTPDIVE_PASSWORD for non-interactive use")
	}
	fmt.Printf("Password for %s: ", user)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
