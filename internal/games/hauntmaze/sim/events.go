package sim

// EventType names a gameplay event. Front ends map them to sounds.
type EventType string

const (
	EventPelletEaten  EventType = "PELLET_EATEN"
	EventCandyEaten   EventType = "CANDY_EATEN"
	EventGhostEaten   EventType = "GHOST_EATEN"
	EventWallBroken   EventType = "WALL_BROKEN"
	EventPlayerDied   EventType = "PLAYER_DIED"
	EventStageWon     EventType = "STAGE_WON"
	EventFruitEaten   EventType = "FRUIT_EATEN"
	EventGameOver     EventType = "GAME_OVER"
	EventStageStarted EventType = "STAGE_STARTED"
)

// Event is one notification emitted during a tick.
type Event struct {
	Type   EventType `json:"type"`
	Tick   uint64    `json:"tick"`
	Cell   Cell      `json:"cell"`
	Points int       `json:"points,omitempty"`
}

// EventNames returns the type names of events in order.
func EventNames(events []Event) []string {
	if len(events) == 0 {
		return nil
	}
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e.Type)
	}
	return names
}
