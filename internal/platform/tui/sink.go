package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze"
	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze/sim"
)

// FrameObserver receives every simulated frame together with its events.
type FrameObserver interface {
	Observe(snap sim.Snapshot, events []sim.Event)
}

// Frames fans each frame out to the given observers, skipping nil ones.
func Frames(observers ...FrameObserver) hauntmaze.FrameFunc {
	live := make([]FrameObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	return func(snap sim.Snapshot, events []sim.Event) {
		for _, o := range live {
			o.Observe(snap, events)
		}
	}
}

// bellEvents ring the terminal bell when a bell writer is set.
var bellEvents = map[sim.EventType]bool{
	sim.EventGhostEaten: true,
	sim.EventPlayerDied: true,
	sim.EventStageWon:   true,
}

// LogSink stands in for an audio backend: it logs every event at debug
// level and optionally rings the bell for the loud ones.
type LogSink struct {
	logger *log.Logger
	bell   io.Writer
}

// NewLogSink creates a sink. A nil bell keeps it silent.
func NewLogSink(logger *log.Logger, bell io.Writer) *LogSink {
	return &LogSink{logger: logger, bell: bell}
}

// Observe implements FrameObserver.
func (s *LogSink) Observe(snap sim.Snapshot, events []sim.Event) {
	ring := false
	for _, ev := range events {
		if s.logger != nil {
			s.logger.Debug("sim event",
				"event", ev.Type,
				"stage", snap.Stage,
				"tick", ev.Tick,
				"x", ev.Cell.X,
				"y", ev.Cell.Y,
				"points", ev.Points,
			)
		}
		ring = ring || bellEvents[ev.Type]
	}
	if ring && s.bell != nil {
		//nolint:errcheck // The bell is cosmetic
		io.WriteString(s.bell, "\a")
	}
}
