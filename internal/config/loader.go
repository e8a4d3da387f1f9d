package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "hauntmaze.yaml"

// LoadHaunt loads the game configuration.
// Search order: customPath -> ~/.hauntmaze/configs/hauntmaze.yaml -> ./configs/hauntmaze.yaml -> embedded default
// Files only need to name the keys they override; everything else keeps its default.
func LoadHaunt(customPath string) (HauntConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultHauntConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultHauntConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultHauntYAML)
	if err != nil {
		return DefaultHauntConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (HauntConfig, error) {
	cfg := DefaultHauntConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hauntmaze", "configs", filename)
}

// Validate reports every setting the simulation cannot run with.
func (c HauntConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.Width >= 7 && c.Grid.Width%2 == 1, "grid.width must be odd and at least 7, got %d", c.Grid.Width)
	check(c.Grid.Height >= 7 && c.Grid.Height%2 == 1, "grid.height must be odd and at least 7, got %d", c.Grid.Height)
	check(c.Grid.TileSize > 0, "grid.tile_size must be positive, got %d", c.Grid.TileSize)

	tile := float64(c.Grid.TileSize)
	check(c.Motion.Buffer >= 0 && c.Motion.Buffer < tile, "motion.buffer must be in [0, tile_size), got %g", c.Motion.Buffer)
	check(c.Motion.DriftMarginTiles > 0, "motion.drift_margin_tiles must be positive")

	check(c.Player.Speed > 0 && c.Player.Speed <= tile, "player.speed must be in (0, tile_size], got %g", c.Player.Speed)
	check(c.Player.Lives > 0, "player.lives must be positive, got %d", c.Player.Lives)

	check(c.Ghosts.Count >= 0, "ghosts.count must not be negative")
	check(c.Ghosts.Speed > 0 && c.Ghosts.Speed <= tile, "ghosts.speed must be in (0, tile_size], got %g", c.Ghosts.Speed)
	check(c.Ghosts.ScaredSpeed > 0 && c.Ghosts.ScaredSpeed <= tile, "ghosts.scared_speed must be in (0, tile_size], got %g", c.Ghosts.ScaredSpeed)
	check(c.Ghosts.DeathTicks > 0, "ghosts.death_ticks must be positive")
	check(isProbability(c.Ghosts.RespawnChance), "ghosts.respawn_chance must be in [0, 1]")

	check(c.Power.DurationTicks > 0, "power.duration_ticks must be positive")
	check(c.Power.Charges >= 0, "power.charges must not be negative")

	check(isProbability(c.Hazards.SpawnChance), "hazards.spawn_chance must be in [0, 1]")
	check(c.Hazards.MaxActive >= 0, "hazards.max_active must not be negative")
	check(c.Hazards.MinSpeed > 0 && c.Hazards.MinSpeed <= c.Hazards.MaxSpeed, "hazards speeds must satisfy 0 < min_speed <= max_speed")

	check(isProbability(c.Spawns.BonusCandyChance), "spawns.bonus_candy_chance must be in [0, 1]")
	check(isProbability(c.Spawns.FruitChance), "spawns.fruit_chance must be in [0, 1]")
	check(c.Spawns.PlacementAttempts > 0, "spawns.placement_attempts must be positive")
	check(c.Spawns.SpawnAttempts >= 0, "spawns.spawn_attempts must not be negative")

	check(c.Progression.ClearRatio > 0 && c.Progression.ClearRatio <= 1, "progression.clear_ratio must be in (0, 1]")
	check(c.Progression.WinDelayTicks >= 0, "progression.win_delay_ticks must not be negative")
	check(c.Progression.CountdownFrom > 0, "progression.countdown_from must be positive")
	check(c.Progression.CountdownIntervalTicks > 0, "progression.countdown_interval_ticks must be positive")

	check(c.Maze.ChamberSize >= 1 && c.Maze.ChamberSize%2 == 1, "maze.chamber_size must be odd and positive")
	check(c.Maze.ChamberSize+2 <= min(c.Grid.Width, c.Grid.Height), "maze.chamber_size does not fit the grid")

	return errors.Join(errs...)
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
