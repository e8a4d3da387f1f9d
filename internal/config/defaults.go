package config

import (
	_ "embed"
)

//go:embed defaults/hauntmaze.yaml
var defaultHauntYAML []byte

// DefaultHauntConfig returns the default configuration.
// Durations assume a 60 tick/s simulation.
func DefaultHauntConfig() HauntConfig {
	return HauntConfig{
		Grid: GridConfig{
			Width:    21,
			Height:   21,
			TileSize: 20,
		},
		Motion: MotionConfig{
			Buffer:           4,
			DriftMarginTiles: 2,
		},
		Player: PlayerConfig{
			Speed: 2,
			Lives: 3,
		},
		Ghosts: GhostConfig{
			Count:             4,
			Speed:             2,
			ScaredSpeed:       1,
			CollisionFraction: 0.75,
			DeathTicks:        30,
			RiseSpeed:         1,
			RespawnChance:     0.01,
		},
		Power: PowerConfig{
			DurationTicks: 600, // 10 seconds
			Charges:       5,
		},
		Hazards: HazardConfig{
			SpawnChance:       0.003,
			MaxActive:         2,
			MinSpeed:          0.5,
			MaxSpeed:          1.5,
			DriftAmplitude:    20,
			DriftFrequency:    0.05,
			CollisionFraction: 0.65,
		},
		Spawns: SpawnConfig{
			BonusCandyChance:  0.0015,
			FruitChance:       0.001,
			SpawnAttempts:     50,
			PlacementAttempts: 1000,
		},
		Scoring: ScoringConfig{
			Pellet:    10,
			Candy:     50,
			Tombstone: 100,
			Fruit:     500,
			Ghost:     200,
			Wall:      50,
		},
		Progression: ProgressionConfig{
			ClearRatio:             0.75,
			WinDelayTicks:          120,
			CountdownFrom:          3,
			CountdownIntervalTicks: 60,
		},
		Maze: MazeConfig{
			PowerCandies: 10,
			Tombstones:   3,
			ChamberSize:  3,
			SideTunnels:  true,
		},
		Effects: EffectsConfig{
			FragmentCount:    8,
			FragmentLifetime: 30,
			FragmentSpeed:    3,
			FragmentGravity:  0.15,
			PopupLifetime:    45,
			PopupRise:        0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultHauntYAML
}
