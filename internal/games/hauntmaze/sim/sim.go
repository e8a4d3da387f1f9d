// Package sim is the deterministic simulation core of the haunted maze game.
//
// A Sim owns the maze, actors and progression state. The host calls Tick at
// a fixed rate and reads a Snapshot to draw; everything else, including the
// player's input, is pushed in between ticks.
package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/hauntmaze/internal/config"
)

// Player is the user-controlled actor.
type Player struct {
	Actor
	Spawn Vec `json:"spawn"`
}

// Sim is one game session.
type Sim struct {
	cfg    config.HauntConfig
	rng    *rand.Rand
	motion Motion
	mazes  *MazeGenerator

	phase      Phase
	tick       uint64
	phaseTicks int
	countdown  int

	stage     int
	score     int
	highScore int
	lives     int

	grid         *Grid
	playerCell   Cell
	chamber      Cell
	totalPellets int
	eatenPellets int
	bonus        map[Cell]bool

	power     *PowerMode
	player    Player
	ghosts    []*Ghost
	hazards   []*Hazard
	fragments []Fragment
	popups    []Popup

	desired  Direction
	lifeLost bool
	events   []Event
}

// New creates a session on the title screen. All randomness is drawn from
// rng, so equal seeds and equal inputs replay identically.
func New(cfg config.HauntConfig, rng *rand.Rand) *Sim {
	s := &Sim{
		cfg:    cfg,
		rng:    rng,
		motion: NewMotion(cfg),
		mazes:  NewMazeGenerator(cfg, rng),
		phase:  PhaseStart,
		stage:  1,
		lives:  cfg.Player.Lives,
		power:  NewPowerMode(cfg.Power.DurationTicks, cfg.Power.Charges),
	}
	s.loadStage()
	return s
}

// SetDesiredDirection records the player's wish. It is read once at the
// start of the next tick and stays in effect until changed.
func (s *Sim) SetDesiredDirection(d Direction) {
	s.desired = d
}

// SeedHighScore raises the high score to at least n.
func (s *Sim) SeedHighScore(n int) {
	if n > s.highScore {
		s.highScore = n
	}
}

// Tick advances the simulation by one fixed step and returns the events
// emitted since the previous tick.
func (s *Sim) Tick() []Event {
	s.tick++
	desired := s.desired

	switch s.phase {
	case PhasePlaying:
		s.stepPlaying(desired)
	case PhaseWon:
		s.stepWon()
	case PhaseCountdown:
		s.stepCountdown()
	}
	s.stepEffects()

	events := s.events
	s.events = nil
	return events
}

func (s *Sim) stepPlaying(desired Direction) {
	s.lifeLost = false
	if desired != DirNone {
		s.player.Next = desired
	}

	s.stepPlayer()
	s.resolveTile()
	if s.phase != PhasePlaying {
		return
	}

	if s.power.Tick() {
		for _, gh := range s.ghosts {
			gh.Calm()
		}
	}

	s.stepGhosts()
	if s.phase != PhasePlaying {
		return
	}
	s.stepHazards()
	if s.phase != PhasePlaying {
		return
	}

	s.rollSpawns()
	s.checkProgress()
}

func (s *Sim) stepPlayer() {
	p := &s.player.Actor
	if s.motion.Lost(p.Pos) {
		p.Pos = s.player.Spawn
		p.Dir = DirNone
	}

	s.motion.Turn(p, s.grid, s.power.CanPhase())
	if p.Dir != DirNone && s.power.CanPhase() && s.motion.Aligned(p.Pos) {
		c := s.motion.Probe(p.Pos, p.Dir)
		if s.grid.At(c) == TileWall && !s.grid.IsBorder(c) {
			s.breakWall(c)
		}
	}
	s.motion.Advance(p, s.grid, s.power.CanPhase())
}

func (s *Sim) breakWall(c Cell) {
	if !s.power.ConsumeCharge() {
		return
	}
	s.grid.Set(c, TileEmpty)
	s.addScore(s.cfg.Scoring.Wall)
	s.emit(EventWallBroken, c, s.cfg.Scoring.Wall)
	s.burst(c, TileWall)
}

// resolveTile applies the effect of the tile under the player.
func (s *Sim) resolveTile() {
	c := s.motion.CellOf(s.player.Pos)
	sc := s.cfg.Scoring

	switch s.grid.At(c) {
	case TilePellet:
		s.grid.Set(c, TileEmpty)
		s.eat(c)
		s.addScore(sc.Pellet)
		s.emit(EventPelletEaten, c, sc.Pellet)

	case TilePowerCandy:
		s.grid.Set(c, TileEmpty)
		s.eat(c)
		s.addScore(sc.Candy)
		s.power.Activate()
		for _, gh := range s.ghosts {
			gh.Scare()
		}
		s.emit(EventCandyEaten, c, sc.Candy)
		if n, ok := s.placeOnEmpty(TilePowerCandy); ok {
			s.bonus[n] = true
		}

	case TileTombstone:
		if !s.power.IsActive() {
			s.grid.Set(c, TileEmpty)
			s.loseLife()
			return
		}
		// Destroying takes a charge. Without one a powered player passes
		// over it and the tombstone stays.
		if s.power.ConsumeCharge() {
			s.grid.Set(c, TileEmpty)
			s.addScore(sc.Tombstone)
			s.emit(EventWallBroken, c, sc.Tombstone)
			s.burst(c, TileTombstone)
		}

	case TileFruit:
		s.grid.Set(c, TileEmpty)
		s.addScore(sc.Fruit)
		s.popup(s.player.Pos, sc.Fruit)
		s.emit(EventFruitEaten, c, sc.Fruit)
	}
}

// eat counts an edible tile toward stage progress. Candies spawned after
// the stage was built are not part of the total and are not counted.
func (s *Sim) eat(c Cell) {
	if s.bonus[c] {
		delete(s.bonus, c)
		return
	}
	if s.eatenPellets < s.totalPellets {
		s.eatenPellets++
	}
}

func (s *Sim) stepGhosts() {
	home := s.motion.CellPos(s.chamber)
	radius := s.cfg.Ghosts.CollisionFraction * s.motion.TileSize()

	for _, gh := range s.ghosts {
		switch gh.State {
		case GhostDying:
			gh.Die(s.cfg.Ghosts.RiseSpeed, home)
			continue
		case GhostEaten:
			if s.chance(s.cfg.Ghosts.RespawnChance) {
				gh.Respawn(s.power.IsActive())
			}
			continue
		}

		s.moveGhost(gh)
		if s.lifeLost || gh.Pos.Dist(s.player.Pos) >= radius {
			continue
		}

		switch gh.State {
		case GhostScared:
			pts := s.cfg.Scoring.Ghost
			gh.Kill(s.cfg.Ghosts.DeathTicks)
			s.addScore(pts)
			s.popup(gh.Pos, pts)
			s.emit(EventGhostEaten, s.motion.CellOf(gh.Pos), pts)
		case GhostNormal:
			if !s.power.IsActive() {
				s.loseLife()
			}
		}
		if s.phase != PhasePlaying {
			return
		}
	}
}

func (s *Sim) moveGhost(gh *Ghost) {
	if s.motion.Lost(gh.Pos) {
		gh.Pos = gh.Spawn
		gh.Dir = DirNone
	}
	gh.Speed = s.cfg.Ghosts.Speed
	if gh.State == GhostScared {
		gh.Speed = s.cfg.Ghosts.ScaredSpeed
	}
	if s.motion.Aligned(gh.Pos) {
		gh.Dir = s.pickDirection(gh)
	}
	s.motion.Advance(&gh.Actor, s.grid, false)
}

// pickDirection chooses uniformly among legal headings other than a
// reversal. A ghost in a dead end reverses; a boxed-in ghost stops.
func (s *Sim) pickDirection(gh *Ghost) Direction {
	reverse := gh.Dir.Opposite()
	options := make([]Direction, 0, len(cardinals))
	for _, d := range cardinals {
		if d == reverse {
			continue
		}
		if s.motion.CanMove(s.grid, gh.Pos, d, false) {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		if reverse != DirNone && s.motion.CanMove(s.grid, gh.Pos, reverse, false) {
			return reverse
		}
		return DirNone
	}
	return options[s.rng.Intn(len(options))]
}

func (s *Sim) stepHazards() {
	hz := s.cfg.Hazards
	radius := hz.CollisionFraction * s.motion.TileSize()
	bottom := float64(s.cfg.CanvasHeight())

	live := s.hazards[:0]
	for _, h := range s.hazards {
		if !h.Active {
			continue
		}
		h.Fall(hz.DriftAmplitude, hz.DriftFrequency)
		if h.Pos.Y > bottom {
			continue
		}
		if !s.lifeLost && h.Pos.Dist(s.player.Pos) < radius {
			h.Active = false
			if !s.power.IsActive() {
				s.loseLife()
			}
			continue
		}
		live = append(live, h)
	}
	s.hazards = live
}

func (s *Sim) rollSpawns() {
	if s.chance(s.cfg.Spawns.BonusCandyChance) {
		if c, ok := s.placeOnEmpty(TilePowerCandy); ok {
			s.bonus[c] = true
		}
	}
	if s.chance(s.cfg.Spawns.FruitChance) {
		s.placeOnEmpty(TileFruit)
	}
	if len(s.hazards) < s.cfg.Hazards.MaxActive && s.chance(s.cfg.Hazards.SpawnChance) {
		s.spawnHazard()
	}
}

// placeOnEmpty drops t on a random EMPTY cell other than the player's.
// It gives up after the configured number of attempts.
func (s *Sim) placeOnEmpty(t Tile) (Cell, bool) {
	player := s.motion.CellOf(s.player.Pos)
	for i := 0; i < s.cfg.Spawns.SpawnAttempts; i++ {
		c := Cell{X: s.rng.Intn(s.grid.Width), Y: s.rng.Intn(s.grid.Height)}
		if c == player || s.grid.At(c) != TileEmpty {
			continue
		}
		s.grid.Set(c, t)
		return c, true
	}
	return Cell{}, false
}

func (s *Sim) spawnHazard() {
	hz := s.cfg.Hazards
	tile := s.motion.TileSize()
	x := s.rng.Float64() * (float64(s.cfg.CanvasWidth()) - tile)
	s.hazards = append(s.hazards, &Hazard{
		Pos:    Vec{X: x, Y: -tile},
		BaseX:  x,
		VY:     hz.MinSpeed + s.rng.Float64()*(hz.MaxSpeed-hz.MinSpeed),
		Phase:  s.rng.Float64() * 2 * math.Pi,
		Active: true,
	})
}

// loseLife costs one life. The last life ends the run in place; otherwise
// the actors return to their spawns.
func (s *Sim) loseLife() {
	s.lifeLost = true
	s.lives--
	s.emit(EventPlayerDied, s.motion.CellOf(s.player.Pos), 0)
	if s.lives <= 0 {
		s.lives = 0
		s.phase = PhaseGameOver
		s.emit(EventGameOver, s.motion.CellOf(s.player.Pos), s.score)
		return
	}
	s.resetPositions()
}

func (s *Sim) resetPositions() {
	s.player.Pos = s.player.Spawn
	s.player.Dir = DirNone
	s.player.Next = DirNone
	for _, gh := range s.ghosts {
		gh.Reset()
	}
	s.power.Reset()
}

func (s *Sim) stepEffects() {
	fx := s.cfg.Effects

	frags := s.fragments[:0]
	for _, f := range s.fragments {
		f.TTL--
		if f.TTL <= 0 {
			continue
		}
		f.Pos = f.Pos.Add(f.Vel)
		f.Vel.Y += fx.FragmentGravity
		frags = append(frags, f)
	}
	s.fragments = frags

	pops := s.popups[:0]
	for _, p := range s.popups {
		p.TTL--
		if p.TTL <= 0 {
			continue
		}
		p.Pos.Y -= fx.PopupRise
		pops = append(pops, p)
	}
	s.popups = pops
}

// burst scatters debris from the center of c.
func (s *Sim) burst(c Cell, kind Tile) {
	fx := s.cfg.Effects
	origin := s.motion.CellPos(c)
	for i := 0; i < fx.FragmentCount; i++ {
		angle := 2*math.Pi*float64(i)/float64(fx.FragmentCount) + s.rng.Float64()*0.5
		speed := fx.FragmentSpeed * (0.5 + s.rng.Float64()/2)
		s.fragments = append(s.fragments, Fragment{
			Pos:  origin,
			Vel:  Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			TTL:  fx.FragmentLifetime,
			Kind: kind,
		})
	}
}

func (s *Sim) popup(pos Vec, points int) {
	s.popups = append(s.popups, Popup{Pos: pos, Points: points, TTL: s.cfg.Effects.PopupLifetime})
}

func (s *Sim) addScore(n int) {
	s.score += n
	if s.score > s.highScore {
		s.highScore = s.score
	}
}

func (s *Sim) emit(t EventType, c Cell, points int) {
	s.events = append(s.events, Event{Type: t, Tick: s.tick, Cell: c, Points: points})
}

// chance reports true with probability p. Zero never draws from the rng.
func (s *Sim) chance(p float64) bool {
	return p > 0 && s.rng.Float64() < p
}

// Phase returns the current progression phase.
func (s *Sim) Phase() Phase { return s.phase }

// Score returns the score of the current run.
func (s *Sim) Score() int { return s.score }

// HighScore returns the best score seen by this session.
func (s *Sim) HighScore() int { return s.highScore }

// Lives returns the remaining lives.
func (s *Sim) Lives() int { return s.lives }

// Stage returns the 1-based stage number.
func (s *Sim) Stage() int { return s.stage }

// Countdown returns the number shown during the inter-stage countdown.
func (s *Sim) Countdown() int { return s.countdown }

// Grid returns the live maze. Callers must not modify it.
func (s *Sim) Grid() *Grid { return s.grid }

// Power returns the power-mode controller.
func (s *Sim) Power() *PowerMode { return s.power }

// Player returns a copy of the player.
func (s *Sim) Player() Player { return s.player }

// Ghosts returns the live ghosts. Callers must not modify them.
func (s *Sim) Ghosts() []*Ghost { return s.ghosts }

// Hazards returns the active hazards.
func (s *Sim) Hazards() []*Hazard { return s.hazards }

// Progress returns eaten and total pellet counts for the stage.
func (s *Sim) Progress() (eaten, total int) { return s.eatenPellets, s.totalPellets }

// Percent returns the share of the stage's pellets eaten, from 0 to 100.
func (s *Sim) Percent() float64 {
	if s.totalPellets == 0 {
		return 0
	}
	return 100 * float64(s.eatenPellets) / float64(s.totalPellets)
}
