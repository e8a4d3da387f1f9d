package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hauntmaze/internal/config"
	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze"
	"github.com/vovakirdan/hauntmaze/internal/platform/tui"
	"github.com/vovakirdan/hauntmaze/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. All sessions share one leaderboard,
kept in memory unless --db names a file.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hauntmaze/host_key

Examples:
  hauntmaze serve                           # Listen on :23234 with auto-generated key
  hauntmaze serve --ssh :2222               # Listen on port 2222
  hauntmaze serve --host-key ./my_host_key  # Use specific host key
  hauntmaze serve --db ./runs.db            # Keep the leaderboard on disk

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	if err := serve(cmd.Context()); err != nil {
		fail("%v", err)
	}
}

// serve hosts games over SSH until ctx is done or the server fails.
func serve(ctx context.Context) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if flagConfig != "" {
		if _, err := config.LoadHaunt(flagConfig); err != nil {
			logger.Error("invalid config", "path", flagConfig, "error", err)
			return err
		}
	}
	hauntmaze.SetConfigPath(flagConfig)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var observers []tui.FrameObserver
	if hub := startSpectate(ctx, logger); hub != nil {
		observers = append(observers, hub)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Bell:        flagBell,
	}

	server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("ssh"), observers...)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Haunted Maze SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
