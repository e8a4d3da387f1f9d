package sim

import "math"

// GhostView is the drawable state of one ghost.
type GhostView struct {
	Pos   Vec        `json:"pos"`
	Dir   Direction  `json:"dir"`
	Trait GhostTrait `json:"trait"`
	State GhostState `json:"state"`
	Fade  float64    `json:"fade"`
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Tick         uint64      `json:"tick"`
	Phase        Phase       `json:"phase"`
	Countdown    int         `json:"countdown"`
	Stage        int         `json:"stage"`
	Score        int         `json:"score"`
	HighScore    int         `json:"high_score"`
	Lives        int         `json:"lives"`
	EatenPellets int         `json:"eaten_pellets"`
	TotalPellets int         `json:"total_pellets"`
	Percent      float64     `json:"percent"`
	PowerTicks   int         `json:"power_ticks"`
	Charges      int         `json:"charges"`
	TileSize     int         `json:"tile_size"`
	Player       Actor       `json:"player"`
	Ghosts       []GhostView `json:"ghosts"`
	Hazards      []Vec       `json:"hazards"`
	Fragments    []Fragment  `json:"fragments"`
	Popups       []Popup     `json:"popups"`
	Tiles        [][]Tile    `json:"-"`
}

// Snapshot copies the current state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         s.tick,
		Phase:        s.phase,
		Countdown:    s.countdown,
		Stage:        s.stage,
		Score:        s.score,
		HighScore:    s.highScore,
		Lives:        s.lives,
		EatenPellets: s.eatenPellets,
		TotalPellets: s.totalPellets,
		Percent:      s.Percent(),
		PowerTicks:   s.power.TicksRemaining(),
		Charges:      s.power.ChargesRemaining(),
		TileSize:     s.cfg.Grid.TileSize,
		Player:       s.player.Actor,
		Ghosts:       make([]GhostView, len(s.ghosts)),
		Hazards:      make([]Vec, 0, len(s.hazards)),
		Fragments:    append([]Fragment(nil), s.fragments...),
		Popups:       append([]Popup(nil), s.popups...),
		Tiles:        s.grid.Rows(),
	}
	for i, gh := range s.ghosts {
		snap.Ghosts[i] = GhostView{
			Pos:   gh.Pos,
			Dir:   gh.Dir,
			Trait: gh.Trait,
			State: gh.State,
			Fade:  gh.DeathProgress(s.cfg.Ghosts.DeathTicks),
		}
	}
	for _, h := range s.hazards {
		if h.Active {
			snap.Hazards = append(snap.Hazards, h.Pos)
		}
	}
	return snap
}

// PowerActive reports whether power mode was running when the snapshot was taken.
func (snap Snapshot) PowerActive() bool {
	return snap.PowerTicks > 0
}

// TileRows encodes the maze as one string per row using Tile.Code.
func (snap Snapshot) TileRows() []string {
	rows := make([]string, len(snap.Tiles))
	for y, row := range snap.Tiles {
		b := make([]byte, len(row))
		for x, t := range row {
			b[x] = t.Code()
		}
		rows[y] = string(b)
	}
	return rows
}

// Hash returns a fingerprint of the gameplay state. Equal seeds and equal
// inputs yield equal hashes tick for tick.
func (snap Snapshot) Hash() uint64 {
	h := uint64(17)
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixI := func(v int) { mix(uint64(v)) } //#nosec G115 -- hash input, sign is irrelevant
	mixS := func(v string) {
		for i := 0; i < len(v); i++ {
			mix(uint64(v[i]))
		}
	}

	mix(snap.Tick)
	mixS(string(snap.Phase))
	mixI(snap.Countdown)
	mixI(snap.Stage)
	mixI(snap.Score)
	mixI(snap.Lives)
	mixI(snap.EatenPellets)
	mixI(snap.TotalPellets)
	mixI(snap.PowerTicks)
	mixI(snap.Charges)
	mixF(snap.Player.Pos.X)
	mixF(snap.Player.Pos.Y)
	mixI(int(snap.Player.Dir))
	for _, g := range snap.Ghosts {
		mixF(g.Pos.X)
		mixF(g.Pos.Y)
		mixS(string(g.State))
	}
	for _, p := range snap.Hazards {
		mixF(p.X)
		mixF(p.Y)
	}
	for _, row := range snap.Tiles {
		for _, t := range row {
			mix(uint64(t))
		}
	}
	return h
}
