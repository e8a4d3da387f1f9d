// Package config provides YAML-based game configuration loading for the
// maze game. Every tunable of the simulation lives here so the core can be
// driven with deterministic values in tests.
package config

// HauntConfig contains all configuration for the haunted maze game.
type HauntConfig struct {
	Grid        GridConfig        `yaml:"grid"`
	Motion      MotionConfig      `yaml:"motion"`
	Player      PlayerConfig      `yaml:"player"`
	Ghosts      GhostConfig       `yaml:"ghosts"`
	Power       PowerConfig       `yaml:"power"`
	Hazards     HazardConfig      `yaml:"hazards"`
	Spawns      SpawnConfig       `yaml:"spawns"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
	Maze        MazeConfig        `yaml:"maze"`
	Effects     EffectsConfig     `yaml:"effects"`
}

// GridConfig defines the tile grid dimensions.
// Positions are measured in units; one tile is TileSize units wide.
type GridConfig struct {
	Width    int `yaml:"width"`     // Tiles per row (odd)
	Height   int `yaml:"height"`    // Tiles per column (odd)
	TileSize int `yaml:"tile_size"` // Units per tile
}

// MotionConfig defines the collision look-ahead shared by all movers.
type MotionConfig struct {
	Buffer           float64 `yaml:"buffer"`             // Look-ahead past the leading edge, in units
	DriftMarginTiles int     `yaml:"drift_margin_tiles"` // Tiles past an edge before a mover counts as lost
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Speed float64 `yaml:"speed"` // Units per tick
	Lives int     `yaml:"lives"` // Lives at the start of a run
}

// GhostConfig defines ghost parameters.
type GhostConfig struct {
	Count             int     `yaml:"count"`
	Speed             float64 `yaml:"speed"`              // Units per tick while NORMAL
	ScaredSpeed       float64 `yaml:"scared_speed"`       // Units per tick while SCARED
	CollisionFraction float64 `yaml:"collision_fraction"` // Fraction of a tile for center distance hits
	DeathTicks        int     `yaml:"death_ticks"`        // Length of the DYING animation
	RiseSpeed         float64 `yaml:"rise_speed"`         // Units per tick while DYING
	RespawnChance     float64 `yaml:"respawn_chance"`     // Per-tick chance for EATEN -> NORMAL
}

// PowerConfig defines the power-mode window.
type PowerConfig struct {
	DurationTicks int `yaml:"duration_ticks"`
	Charges       int `yaml:"charges"` // Wall-break charges granted on activation
}

// HazardConfig defines falling witch parameters.
type HazardConfig struct {
	SpawnChance       float64 `yaml:"spawn_chance"` // Per-tick chance
	MaxActive         int     `yaml:"max_active"`
	MinSpeed          float64 `yaml:"min_speed"` // Units per tick
	MaxSpeed          float64 `yaml:"max_speed"`
	DriftAmplitude    float64 `yaml:"drift_amplitude"` // Horizontal sway in units
	DriftFrequency    float64 `yaml:"drift_frequency"` // Radians per unit fallen
	CollisionFraction float64 `yaml:"collision_fraction"`
}

// SpawnConfig defines stochastic tile spawns.
type SpawnConfig struct {
	BonusCandyChance  float64 `yaml:"bonus_candy_chance"` // Per-tick chance
	FruitChance       float64 `yaml:"fruit_chance"`       // Per-tick chance
	SpawnAttempts     int     `yaml:"spawn_attempts"`     // Retry budget for in-play spawns
	PlacementAttempts int     `yaml:"placement_attempts"` // Retry budget for maze decoration
}

// ScoringConfig defines score awards.
type ScoringConfig struct {
	Pellet    int `yaml:"pellet"`
	Candy     int `yaml:"candy"`
	Tombstone int `yaml:"tombstone"`
	Fruit     int `yaml:"fruit"`
	Ghost     int `yaml:"ghost"`
	Wall      int `yaml:"wall"`
}

// ProgressionConfig defines stage clear and countdown timing.
type ProgressionConfig struct {
	ClearRatio             float64 `yaml:"clear_ratio"`     // Eaten/total pellets that clears a stage
	WinDelayTicks          int     `yaml:"win_delay_ticks"` // Ticks spent in WON before the countdown
	CountdownFrom          int     `yaml:"countdown_from"`
	CountdownIntervalTicks int     `yaml:"countdown_interval_ticks"`
}

// MazeConfig defines maze post-processing.
type MazeConfig struct {
	PowerCandies int  `yaml:"power_candies"`
	Tombstones   int  `yaml:"tombstones"`
	ChamberSize  int  `yaml:"chamber_size"`
	SideTunnels  bool `yaml:"side_tunnels"`
}

// EffectsConfig defines cosmetic particles emitted by the core.
type EffectsConfig struct {
	FragmentCount    int     `yaml:"fragment_count"`
	FragmentLifetime int     `yaml:"fragment_lifetime"`
	FragmentSpeed    float64 `yaml:"fragment_speed"`
	FragmentGravity  float64 `yaml:"fragment_gravity"`
	PopupLifetime    int     `yaml:"popup_lifetime"`
	PopupRise        float64 `yaml:"popup_rise"`
}

// CanvasWidth returns the playfield width in units.
func (c HauntConfig) CanvasWidth() float64 {
	return float64(c.Grid.Width * c.Grid.TileSize)
}

// CanvasHeight returns the playfield height in units.
func (c HauntConfig) CanvasHeight() float64 {
	return float64(c.Grid.Height * c.Grid.TileSize)
}
