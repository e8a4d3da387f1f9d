package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hauntmaze/internal/config"
	"github.com/vovakirdan/hauntmaze/internal/core"
	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze"
	"github.com/vovakirdan/hauntmaze/internal/platform/tui"
	"github.com/vovakirdan/hauntmaze/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally",
	Long: `Start a local game.

Controls:
  Arrows/WASD  - Steer (the turn is taken at the next free intersection)
  Enter/Space  - Start a run
  P            - Pause
  Esc/B        - Back to the title screen
  R            - New run (after game over)
  Tab          - Scoreboard
  Ctrl+S       - Screenshot to ~/.hauntmaze/screenshots
  Q/Ctrl+C     - Quit

Examples:
  hauntmaze play
  hauntmaze play --seed 42
  hauntmaze play --config ./my-maze.yaml --log-file /tmp/hauntmaze.log --log-level debug
  hauntmaze play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd.Context()); err != nil {
		fail("%v", err)
	}
}

// play runs a local game. Errors are returned rather than exiting so the
// log file and store are closed on every path.
func play(ctx context.Context) error {
	// The TUI owns the terminal: logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
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

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var bell io.Writer
	if flagBell {
		bell = os.Stderr
	}

	game := hauntmaze.New()
	game.SetLogger(logger)
	game.OnFrame(tui.Frames(tui.NewLogSink(logger, bell), startSpectate(ctx, logger)))

	logger.Info("starting local game", "seed", cfg.Seed, "fps", cfg.TickRate, "db", flagDBPath)
	if err := tui.Run(game, store, cfg, playerName()); err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playerName labels local runs on the leaderboard.
func playerName() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	return "player"
}
