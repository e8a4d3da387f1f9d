package sim

import "math"

// Hazard is a falling witch drifting sideways along a sine path.
type Hazard struct {
	Pos      Vec     `json:"pos"`
	BaseX    float64 `json:"base_x"`
	VY       float64 `json:"vy"`
	Phase    float64 `json:"phase"`
	Traveled float64 `json:"traveled"`
	Active   bool    `json:"active"`
}

// Fall moves the hazard one tick down its path.
func (h *Hazard) Fall(amplitude, frequency float64) {
	h.Pos.Y += h.VY
	h.Traveled += h.VY
	h.Pos.X = h.BaseX + amplitude*math.Sin(h.Phase+h.Traveled*frequency)
}

// Fragment is a debris particle from a broken wall or tombstone.
type Fragment struct {
	Pos  Vec  `json:"pos"`
	Vel  Vec  `json:"vel"`
	TTL  int  `json:"ttl"`
	Kind Tile `json:"kind"`
}

// Popup is a floating score label.
type Popup struct {
	Pos    Vec `json:"pos"`
	Points int `json:"points"`
	TTL    int `json:"ttl"`
}
