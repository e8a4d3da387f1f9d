package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hauntmaze/internal/platform/spectate"
	"github.com/vovakirdan/hauntmaze/internal/platform/tui"
)

// newLogger builds the process logger. Output goes to --log-file when set,
// otherwise to fallback. The returned func closes the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		//nolint:errcheck // Best-effort directory creation
		os.MkdirAll(filepath.Dir(flagLogFile), 0o755)
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "hauntmaze",
		Level:           level,
	})
	return logger, closeFn, nil
}

// startSpectate serves the WebSocket feed when --spectate is set and
// returns it as a frame observer. It returns nil otherwise.
func startSpectate(ctx context.Context, logger *log.Logger) tui.FrameObserver {
	if flagSpectate == "" {
		return nil
	}
	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	go func() {
		if err := hub.Serve(ctx, flagSpectate); err != nil {
			logger.Error("spectate feed stopped", "error", err)
		}
	}()
	return hub
}
