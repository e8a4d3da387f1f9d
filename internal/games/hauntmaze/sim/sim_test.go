package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/hauntmaze/internal/config"
)

// quietConfig disables every stochastic spawn so tests see only what they set up.
func quietConfig() config.HauntConfig {
	cfg := config.DefaultHauntConfig()
	cfg.Hazards.SpawnChance = 0
	cfg.Hazards.DriftAmplitude = 0
	cfg.Spawns.BonusCandyChance = 0
	cfg.Spawns.FruitChance = 0
	cfg.Ghosts.RespawnChance = 0
	return cfg
}

var codeToTile = map[byte]Tile{
	'#': TileWall,
	' ': TileEmpty,
	'.': TilePellet,
	'o': TilePowerCandy,
	'H': TileChamberSpawn,
	'P': TilePlayerSpawn,
	'T': TileTombstone,
	'F': TileFruit,
}

func parseLayout(rows ...string) *Grid {
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			g.Set(Cell{X: x, Y: y}, codeToTile[row[x]])
		}
	}
	return g
}

// newLayoutSim starts a run and swaps the generated maze for a fixed layout
// with no ghosts. 'P' marks the player spawn and 'H' the chamber center.
func newLayoutSim(t *testing.T, cfg config.HauntConfig, rows ...string) *Sim {
	t.Helper()
	cfg.Grid.Width = len(rows[0])
	cfg.Grid.Height = len(rows)

	s := New(cfg, rand.New(rand.NewSource(1)))
	s.StartRun()
	s.events = nil

	g := parseLayout(rows...)
	if c, ok := g.Find(TilePlayerSpawn); ok {
		s.playerCell = c
		g.Set(c, TileEmpty)
	} else {
		t.Fatal("layout has no player spawn")
	}
	if c, ok := g.Find(TileChamberSpawn); ok {
		s.chamber = c
		g.Set(c, TileEmpty)
	}
	s.grid = g
	s.totalPellets = g.Count(TilePellet, TilePowerCandy)
	s.eatenPellets = 0
	s.bonus = make(map[Cell]bool)

	spawn := s.motion.CellPos(s.playerCell)
	s.player = Player{Actor: Actor{Pos: spawn, Speed: cfg.Player.Speed}, Spawn: spawn}
	s.ghosts = nil
	return s
}

func (s *Sim) addGhost(c Cell, state GhostState) *Ghost {
	gh := NewGhost(TraitShadow, s.motion.CellPos(c))
	gh.Speed = s.cfg.Ghosts.Speed
	gh.State = state
	s.ghosts = append(s.ghosts, gh)
	return gh
}

func hasEvent(events []Event, t EventType) bool {
	for _, e := range events {
		if e.Type == t {
			return true
		}
	}
	return false
}

var smallLayout = []string{
	"#########",
	"#P......#",
	"#.##.##.#",
	"#.......#",
	"#########",
}

func TestEatPellet(t *testing.T) {
	s := newLayoutSim(t, quietConfig(), smallLayout...)
	c := Cell{X: 2, Y: 1}
	s.player.Pos = s.motion.CellPos(c)

	events := s.Tick()

	if s.Score() != 10 {
		t.Errorf("Expected score 10, got %d", s.Score())
	}
	if eaten, _ := s.Progress(); eaten != 1 {
		t.Errorf("Expected 1 pellet eaten, got %d", eaten)
	}
	if s.grid.At(c) != TileEmpty {
		t.Errorf("Expected tile to be EMPTY, got %v", s.grid.At(c))
	}
	if !hasEvent(events, EventPelletEaten) {
		t.Errorf("Expected PELLET_EATEN event, got %v", events)
	}
}

func TestEatPowerCandy(t *testing.T) {
	cfg := quietConfig()
	s := newLayoutSim(t, cfg, smallLayout...)
	c := Cell{X: 2, Y: 1}
	s.grid.Set(c, TilePowerCandy)
	s.player.Pos = s.motion.CellPos(c)
	g1 := s.addGhost(Cell{X: 7, Y: 3}, GhostNormal)
	g2 := s.addGhost(Cell{X: 6, Y: 3}, GhostNormal)
	g3 := s.addGhost(Cell{X: 4, Y: 3}, GhostEaten)

	events := s.Tick()

	if s.Score() != cfg.Scoring.Candy {
		t.Errorf("Expected score %d, got %d", cfg.Scoring.Candy, s.Score())
	}
	if !s.power.IsActive() {
		t.Fatal("Expected power mode to be active")
	}
	if s.power.TicksRemaining() != cfg.Power.DurationTicks-1 {
		t.Errorf("Expected %d power ticks left, got %d", cfg.Power.DurationTicks-1, s.power.TicksRemaining())
	}
	if s.power.ChargesRemaining() != cfg.Power.Charges {
		t.Errorf("Expected %d charges, got %d", cfg.Power.Charges, s.power.ChargesRemaining())
	}
	if g1.State != GhostScared || g2.State != GhostScared {
		t.Errorf("Expected roaming ghosts SCARED, got %v and %v", g1.State, g2.State)
	}
	if g3.State != GhostEaten {
		t.Errorf("Expected EATEN ghost to stay EATEN, got %v", g3.State)
	}
	if !hasEvent(events, EventCandyEaten) {
		t.Errorf("Expected CANDY_EATEN event, got %v", events)
	}
}

func TestCandyRespawnsElsewhere(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawns.SpawnAttempts = 2000
	s := newLayoutSim(t, cfg,
		"#########",
		"#Po     #",
		"#.##.##.#",
		"#.......#",
		"#########",
	)
	s.player.Pos = s.motion.CellPos(Cell{X: 2, Y: 1})
	before := s.grid.Count(TilePowerCandy)

	s.Tick()

	if got := s.grid.Count(TilePowerCandy); got != before {
		t.Errorf("Expected a replacement candy (%d candies), got %d", before, got)
	}
	if s.grid.At(Cell{X: 2, Y: 1}) != TileEmpty {
		t.Error("Expected eaten candy tile to be EMPTY")
	}
	if len(s.bonus) != 1 {
		t.Errorf("Expected replacement to be tracked as bonus, got %d", len(s.bonus))
	}
}

func TestBonusCandyDoesNotCountTowardProgress(t *testing.T) {
	s := newLayoutSim(t, quietConfig(), smallLayout...)
	c := Cell{X: 1, Y: 1}
	s.grid.Set(c, TilePowerCandy)
	s.bonus[c] = true

	s.Tick()

	eaten, total := s.Progress()
	if eaten != 0 {
		t.Errorf("Expected bonus candy not to count, got %d eaten", eaten)
	}
	if total != s.grid.Count(TilePellet) {
		t.Errorf("Expected total to be unchanged, got %d", total)
	}
}

func TestScaredGhostCollision(t *testing.T) {
	cfg := quietConfig()
	s := newLayoutSim(t, cfg, smallLayout...)
	s.power.Activate()
	gh := s.addGhost(Cell{X: 1, Y: 1}, GhostScared)

	events := s.Tick()

	if gh.State != GhostDying {
		t.Fatalf("Expected ghost DYING, got %v", gh.State)
	}
	if gh.DeathTimer != cfg.Ghosts.DeathTicks {
		t.Errorf("Expected death timer %d, got %d", cfg.Ghosts.DeathTicks, gh.DeathTimer)
	}
	if s.Score() != cfg.Scoring.Ghost {
		t.Errorf("Expected score %d, got %d", cfg.Scoring.Ghost, s.Score())
	}
	if len(s.popups) != 1 || s.popups[0].Points != cfg.Scoring.Ghost {
		t.Errorf("Expected one %d popup, got %v", cfg.Scoring.Ghost, s.popups)
	}
	if !hasEvent(events, EventGhostEaten) {
		t.Errorf("Expected GHOST_EATEN event, got %v", events)
	}
	if s.Lives() != cfg.Player.Lives {
		t.Errorf("Expected no life lost, got %d lives", s.Lives())
	}
}

func TestNormalGhostCollision(t *testing.T) {
	cfg := quietConfig()

	t.Run("costs a life and resets positions", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.player.Pos = s.motion.CellPos(Cell{X: 4, Y: 3})
		gh := s.addGhost(Cell{X: 4, Y: 3}, GhostNormal)
		gh.Spawn = s.motion.CellPos(Cell{X: 7, Y: 1})

		events := s.Tick()

		if s.Lives() != cfg.Player.Lives-1 {
			t.Errorf("Expected %d lives, got %d", cfg.Player.Lives-1, s.Lives())
		}
		if s.player.Pos != s.player.Spawn {
			t.Errorf("Expected player at spawn %v, got %v", s.player.Spawn, s.player.Pos)
		}
		if gh.Pos != gh.Spawn {
			t.Errorf("Expected ghost at spawn %v, got %v", gh.Spawn, gh.Pos)
		}
		if !hasEvent(events, EventPlayerDied) {
			t.Errorf("Expected PLAYER_DIED event, got %v", events)
		}
	})

	t.Run("harmless while powered", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.power.Activate()
		s.addGhost(Cell{X: 1, Y: 1}, GhostNormal)

		s.Tick()

		if s.Lives() != cfg.Player.Lives {
			t.Errorf("Expected no life lost, got %d lives", s.Lives())
		}
	})
}

func TestTombstone(t *testing.T) {
	cfg := quietConfig()

	t.Run("last life ends the run in place", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		c := Cell{X: 3, Y: 1}
		s.grid.Set(c, TileTombstone)
		s.player.Pos = s.motion.CellPos(c)
		s.lives = 1

		events := s.Tick()

		if s.Lives() != 0 {
			t.Errorf("Expected 0 lives, got %d", s.Lives())
		}
		if s.Phase() != PhaseGameOver {
			t.Errorf("Expected GAMEOVER, got %v", s.Phase())
		}
		if s.player.Pos != s.motion.CellPos(c) {
			t.Errorf("Expected player to stay at %v, got %v", s.motion.CellPos(c), s.player.Pos)
		}
		if !hasEvent(events, EventGameOver) {
			t.Errorf("Expected GAME_OVER event, got %v", events)
		}
	})

	t.Run("costs a life when not powered", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		c := Cell{X: 3, Y: 1}
		s.grid.Set(c, TileTombstone)
		s.player.Pos = s.motion.CellPos(c)

		s.Tick()

		if s.Lives() != cfg.Player.Lives-1 {
			t.Errorf("Expected %d lives, got %d", cfg.Player.Lives-1, s.Lives())
		}
		if s.grid.At(c) != TileEmpty {
			t.Errorf("Expected tombstone cleared, got %v", s.grid.At(c))
		}
		if s.player.Pos != s.player.Spawn {
			t.Errorf("Expected player reset to spawn, got %v", s.player.Pos)
		}
	})

	t.Run("destroyed while powered", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		c := Cell{X: 3, Y: 1}
		s.grid.Set(c, TileTombstone)
		s.player.Pos = s.motion.CellPos(c)
		s.power.Activate()

		events := s.Tick()

		if s.Score() != cfg.Scoring.Tombstone {
			t.Errorf("Expected score %d, got %d", cfg.Scoring.Tombstone, s.Score())
		}
		if s.power.ChargesRemaining() != cfg.Power.Charges-1 {
			t.Errorf("Expected %d charges, got %d", cfg.Power.Charges-1, s.power.ChargesRemaining())
		}
		if s.grid.At(c) != TileEmpty {
			t.Errorf("Expected tombstone destroyed, got %v", s.grid.At(c))
		}
		if s.Lives() != cfg.Player.Lives {
			t.Errorf("Expected no life lost, got %d", s.Lives())
		}
		if !hasEvent(events, EventWallBroken) {
			t.Errorf("Expected WALL_BROKEN event, got %v", events)
		}
	})

	t.Run("powered without charges", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		c := Cell{X: 3, Y: 1}
		s.grid.Set(c, TileTombstone)
		s.player.Pos = s.motion.CellPos(c)
		s.power.Activate()
		for s.power.ConsumeCharge() {
		}

		events := s.Tick()

		if s.grid.At(c) != TileTombstone {
			t.Errorf("Expected tombstone to remain, got %v", s.grid.At(c))
		}
		if s.Score() != 0 {
			t.Errorf("Expected no score, got %d", s.Score())
		}
		if s.Lives() != cfg.Player.Lives {
			t.Errorf("Expected no life lost, got %d", s.Lives())
		}
		if s.power.ChargesRemaining() != 0 {
			t.Errorf("Expected 0 charges, got %d", s.power.ChargesRemaining())
		}
		if hasEvent(events, EventWallBroken) {
			t.Errorf("Expected no WALL_BROKEN event, got %v", events)
		}

		// Once power runs out the tombstone is deadly again.
		s.power.Reset()
		s.Tick()

		if s.Lives() != cfg.Player.Lives-1 {
			t.Errorf("Expected %d lives after power ends, got %d", cfg.Player.Lives-1, s.Lives())
		}
		if s.grid.At(c) != TileEmpty {
			t.Errorf("Expected tombstone cleared by the collision, got %v", s.grid.At(c))
		}
	})
}

func TestEatFruit(t *testing.T) {
	cfg := quietConfig()
	s := newLayoutSim(t, cfg, smallLayout...)
	c := Cell{X: 1, Y: 1}
	s.grid.Set(c, TileFruit)

	events := s.Tick()

	if s.Score() != cfg.Scoring.Fruit {
		t.Errorf("Expected score %d, got %d", cfg.Scoring.Fruit, s.Score())
	}
	if len(s.popups) != 1 || s.popups[0].Points != cfg.Scoring.Fruit {
		t.Errorf("Expected one fruit popup, got %v", s.popups)
	}
	if !hasEvent(events, EventFruitEaten) {
		t.Errorf("Expected FRUIT_EATEN event, got %v", events)
	}
}

func TestWallBreak(t *testing.T) {
	cfg := quietConfig()

	t.Run("interior wall", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.player.Pos = s.motion.CellPos(Cell{X: 2, Y: 1})
		s.grid.Set(Cell{X: 2, Y: 1}, TileEmpty)
		s.power.Activate()
		s.SetDesiredDirection(DirDown)

		events := s.Tick()

		wall := Cell{X: 2, Y: 2}
		if s.grid.At(wall) != TileEmpty {
			t.Fatalf("Expected wall broken, got %v", s.grid.At(wall))
		}
		if s.Score() != cfg.Scoring.Wall {
			t.Errorf("Expected score %d, got %d", cfg.Scoring.Wall, s.Score())
		}
		if s.power.ChargesRemaining() != cfg.Power.Charges-1 {
			t.Errorf("Expected %d charges, got %d", cfg.Power.Charges-1, s.power.ChargesRemaining())
		}
		if len(s.fragments) != cfg.Effects.FragmentCount {
			t.Errorf("Expected %d fragments, got %d", cfg.Effects.FragmentCount, len(s.fragments))
		}
		if !hasEvent(events, EventWallBroken) {
			t.Errorf("Expected WALL_BROKEN event, got %v", events)
		}
		if s.player.Dir != DirDown {
			t.Errorf("Expected player heading DOWN, got %v", s.player.Dir)
		}
	})

	t.Run("border wall holds", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.power.Activate()
		s.SetDesiredDirection(DirUp)

		s.Tick()

		if s.grid.At(Cell{X: 1, Y: 0}) != TileWall {
			t.Error("Expected border wall to stay intact")
		}
		if s.power.ChargesRemaining() != cfg.Power.Charges {
			t.Errorf("Expected no charge spent, got %d", s.power.ChargesRemaining())
		}
		if s.player.Pos != s.player.Spawn {
			t.Errorf("Expected player not to move, got %v", s.player.Pos)
		}
	})

	t.Run("no break without power", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.player.Pos = s.motion.CellPos(Cell{X: 2, Y: 1})
		s.SetDesiredDirection(DirDown)

		s.Tick()

		if s.grid.At(Cell{X: 2, Y: 2}) != TileWall {
			t.Error("Expected wall to stay intact")
		}
	})
}

func TestPowerExpiryCalmsGhosts(t *testing.T) {
	cfg := quietConfig()
	cfg.Power.DurationTicks = 2
	s := newLayoutSim(t, cfg, smallLayout...)
	s.grid.Set(Cell{X: 1, Y: 1}, TilePowerCandy)
	roaming := s.addGhost(Cell{X: 7, Y: 3}, GhostNormal)
	dying := s.addGhost(Cell{X: 4, Y: 3}, GhostNormal)

	s.Tick()
	if roaming.State != GhostScared {
		t.Fatalf("Expected SCARED after candy, got %v", roaming.State)
	}
	dying.Kill(cfg.Ghosts.DeathTicks)

	s.Tick()

	if s.power.IsActive() {
		t.Fatal("Expected power mode to have expired")
	}
	if roaming.State != GhostNormal {
		t.Errorf("Expected SCARED ghost to revert to NORMAL, got %v", roaming.State)
	}
	if dying.State != GhostDying {
		t.Errorf("Expected DYING ghost to keep dying, got %v", dying.State)
	}
}

func TestScaredGhostMovesAtHalfSpeed(t *testing.T) {
	cfg := quietConfig()
	s := newLayoutSim(t, cfg, smallLayout...)
	s.power.Activate()
	gh := s.addGhost(Cell{X: 4, Y: 3}, GhostScared)
	gh.Dir = DirRight
	start := gh.Pos

	s.Tick()

	moved := math.Abs(gh.Pos.X-start.X) + math.Abs(gh.Pos.Y-start.Y)
	if moved != cfg.Ghosts.ScaredSpeed {
		t.Errorf("Expected scared ghost to move %v, moved %v", cfg.Ghosts.ScaredSpeed, moved)
	}
}

func TestEatenGhostRespawn(t *testing.T) {
	cfg := quietConfig()
	cfg.Ghosts.RespawnChance = 1

	t.Run("normal without power", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		gh := s.addGhost(Cell{X: 4, Y: 3}, GhostEaten)
		s.Tick()
		if gh.State != GhostNormal {
			t.Errorf("Expected NORMAL, got %v", gh.State)
		}
	})

	t.Run("scared during power", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.power.Activate()
		gh := s.addGhost(Cell{X: 4, Y: 3}, GhostEaten)
		s.Tick()
		if gh.State != GhostScared {
			t.Errorf("Expected SCARED, got %v", gh.State)
		}
	})

	t.Run("never without a roll", func(t *testing.T) {
		s := newLayoutSim(t, quietConfig(), smallLayout...)
		gh := s.addGhost(Cell{X: 4, Y: 3}, GhostEaten)
		for i := 0; i < 100; i++ {
			s.Tick()
		}
		if gh.State != GhostEaten {
			t.Errorf("Expected EATEN, got %v", gh.State)
		}
	})
}

func TestGhostDyingResolvesInFixedTicks(t *testing.T) {
	cfg := quietConfig()
	s := newLayoutSim(t, cfg, smallLayout...)
	s.chamber = Cell{X: 4, Y: 3}
	s.power.Activate()
	gh := s.addGhost(Cell{X: 7, Y: 3}, GhostScared)
	gh.Kill(cfg.Ghosts.DeathTicks)
	startY := gh.Pos.Y

	for i := 1; i < cfg.Ghosts.DeathTicks; i++ {
		s.Tick()
		if gh.State != GhostDying {
			t.Fatalf("Expected DYING at tick %d, got %v", i, gh.State)
		}
	}
	if want := startY - float64(cfg.Ghosts.DeathTicks-1)*cfg.Ghosts.RiseSpeed; gh.Pos.Y != want {
		t.Errorf("Expected ghost to rise to %v, got %v", want, gh.Pos.Y)
	}

	s.Tick()

	if gh.State != GhostEaten {
		t.Fatalf("Expected EATEN after %d ticks, got %v", cfg.Ghosts.DeathTicks, gh.State)
	}
	if gh.Pos != s.motion.CellPos(s.chamber) {
		t.Errorf("Expected ghost at chamber %v, got %v", s.motion.CellPos(s.chamber), gh.Pos)
	}
}

func TestHazards(t *testing.T) {
	cfg := quietConfig()

	t.Run("collision costs a life", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		p := s.player.Pos
		s.hazards = []*Hazard{{Pos: Vec{X: p.X, Y: p.Y - 1}, BaseX: p.X, VY: 1, Active: true}}

		s.Tick()

		if s.Lives() != cfg.Player.Lives-1 {
			t.Errorf("Expected %d lives, got %d", cfg.Player.Lives-1, s.Lives())
		}
		if len(s.hazards) != 0 {
			t.Errorf("Expected hazard to be removed, got %d", len(s.hazards))
		}
	})

	t.Run("powered player shrugs it off", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		s.power.Activate()
		p := s.player.Pos
		s.hazards = []*Hazard{{Pos: Vec{X: p.X, Y: p.Y - 1}, BaseX: p.X, VY: 1, Active: true}}

		s.Tick()

		if s.Lives() != cfg.Player.Lives {
			t.Errorf("Expected no life lost, got %d", s.Lives())
		}
		if len(s.hazards) != 0 {
			t.Errorf("Expected hazard to be removed, got %d", len(s.hazards))
		}
	})

	t.Run("pruned below the canvas", func(t *testing.T) {
		s := newLayoutSim(t, cfg, smallLayout...)
		bottom := float64(s.cfg.CanvasHeight())
		s.hazards = []*Hazard{
			{Pos: Vec{X: 100, Y: bottom}, BaseX: 100, VY: 1, Active: true},
			{Pos: Vec{X: 100, Y: 0}, BaseX: 100, VY: 1, Active: false},
		}

		s.Tick()

		if len(s.hazards) != 0 {
			t.Errorf("Expected hazards pruned, got %d", len(s.hazards))
		}
	})

	t.Run("spawn is capped", func(t *testing.T) {
		capped := cfg
		capped.Hazards.SpawnChance = 1
		s := newLayoutSim(t, capped, smallLayout...)
		s.player.Pos = s.motion.CellPos(Cell{X: 4, Y: 3})

		for i := 0; i < 5; i++ {
			s.Tick()
		}

		if len(s.hazards) != capped.Hazards.MaxActive {
			t.Errorf("Expected %d hazards, got %d", capped.Hazards.MaxActive, len(s.hazards))
		}
		for _, h := range s.hazards {
			if h.VY < capped.Hazards.MinSpeed || h.VY > capped.Hazards.MaxSpeed {
				t.Errorf("Expected speed in [%v, %v], got %v", capped.Hazards.MinSpeed, capped.Hazards.MaxSpeed, h.VY)
			}
		}
	})
}

func TestStochasticSpawnsUseEmptyCells(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawns.FruitChance = 1
	cfg.Spawns.SpawnAttempts = 2000
	s := newLayoutSim(t, cfg,
		"#########",
		"#P  ....#",
		"#.##.##.#",
		"#.......#",
		"#########",
	)

	s.Tick()

	fruit, ok := s.grid.Find(TileFruit)
	if !ok {
		t.Fatal("Expected a fruit to spawn")
	}
	if fruit != (Cell{X: 2, Y: 1}) && fruit != (Cell{X: 3, Y: 1}) {
		t.Errorf("Expected fruit on an EMPTY cell, got %v", fruit)
	}
}

func TestPlacementGivesUp(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawns.FruitChance = 1
	cfg.Spawns.BonusCandyChance = 1
	s := newLayoutSim(t, cfg, smallLayout...)

	// No EMPTY cell besides the player's: every spawn must no-op.
	s.Tick()

	if s.grid.Count(TileFruit) != 0 {
		t.Error("Expected no fruit without an EMPTY cell")
	}
}

func TestDesiredDirectionQueues(t *testing.T) {
	s := newLayoutSim(t, quietConfig(), smallLayout...)

	s.SetDesiredDirection(DirRight)
	s.Tick()
	if s.player.Dir != DirRight {
		t.Fatalf("Expected RIGHT, got %v", s.player.Dir)
	}

	// Down is not legal until the player reaches the column under the gap.
	s.SetDesiredDirection(DirDown)
	for i := 0; i < 9; i++ {
		s.Tick()
	}
	if s.player.Dir != DirRight {
		t.Errorf("Expected to keep RIGHT mid-corridor, got %v", s.player.Dir)
	}
	if s.player.Next != DirDown {
		t.Errorf("Expected DOWN to stay queued, got %v", s.player.Next)
	}
}

func TestLostActorRecovers(t *testing.T) {
	s := newLayoutSim(t, quietConfig(), smallLayout...)
	s.player.Pos = Vec{X: 5000, Y: 5000}

	s.Tick()

	if s.player.Pos != s.player.Spawn {
		t.Errorf("Expected lost player back at spawn, got %v", s.player.Pos)
	}
}

func TestFrozenOutsidePlay(t *testing.T) {
	s := New(quietConfig(), rand.New(rand.NewSource(3)))
	start := s.player.Pos
	s.SetDesiredDirection(DirLeft)

	for i := 0; i < 10; i++ {
		s.Tick()
	}

	if s.Phase() != PhaseStart {
		t.Errorf("Expected START, got %v", s.Phase())
	}
	if s.player.Pos != start {
		t.Errorf("Expected player frozen on the title screen, got %v", s.player.Pos)
	}
}

func TestHighScoreOutlivesRun(t *testing.T) {
	s := newLayoutSim(t, quietConfig(), smallLayout...)
	s.player.Pos = s.motion.CellPos(Cell{X: 2, Y: 1})
	s.Tick()

	s.StartRun()

	if s.Score() != 0 {
		t.Errorf("Expected score reset, got %d", s.Score())
	}
	if s.HighScore() != 10 {
		t.Errorf("Expected high score 10, got %d", s.HighScore())
	}

	s.SeedHighScore(5)
	if s.HighScore() != 10 {
		t.Errorf("Expected lower seed to be ignored, got %d", s.HighScore())
	}
	s.SeedHighScore(900)
	if s.HighScore() != 900 {
		t.Errorf("Expected seeded high score 900, got %d", s.HighScore())
	}
}
