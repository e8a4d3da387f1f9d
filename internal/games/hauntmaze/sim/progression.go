package sim

// Phase is the progression state of a session.
type Phase string

const (
	PhaseStart     Phase = "START"
	PhasePlaying   Phase = "PLAYING"
	PhaseWon       Phase = "WON"
	PhaseCountdown Phase = "COUNTDOWN"
	PhaseGameOver  Phase = "GAMEOVER"
)

// Frozen reports whether actors are held still in this phase.
func (p Phase) Frozen() bool {
	return p != PhasePlaying
}

// StartRun begins a new run at stage 1 with a fresh maze, full lives and
// zero score. It is valid from any phase.
func (s *Sim) StartRun() {
	s.stage = 1
	s.score = 0
	s.lives = s.cfg.Player.Lives
	s.startStage()
}

// AdvanceStage moves to the next stage with a fresh maze. Score and lives
// carry over. It only applies to a run in progress; on the title screen or
// after game over it does nothing.
func (s *Sim) AdvanceStage() {
	switch s.phase {
	case PhasePlaying, PhaseWon, PhaseCountdown:
	default:
		return
	}
	s.stage++
	s.startStage()
}

// QuitToTitle abandons the run and returns to the title screen. The high
// score is kept.
func (s *Sim) QuitToTitle() {
	s.phase = PhaseStart
	s.phaseTicks = 0
	s.countdown = 0
	s.power.Reset()
	for _, gh := range s.ghosts {
		gh.Calm()
	}
}

func (s *Sim) startStage() {
	s.loadStage()
	s.phase = PhasePlaying
	s.phaseTicks = 0
	s.countdown = 0
	s.emit(EventStageStarted, s.playerCell, s.stage)
}

// loadStage generates a maze and places every actor at its spawn.
func (s *Sim) loadStage() {
	g := s.mazes.Generate()
	s.playerCell, _ = g.Find(TilePlayerSpawn)
	s.chamber, _ = g.Find(TileChamberSpawn)
	g.Set(s.playerCell, TileEmpty)
	g.Set(s.chamber, TileEmpty)

	s.grid = g
	s.totalPellets = g.Count(TilePellet, TilePowerCandy)
	s.eatenPellets = 0
	s.bonus = make(map[Cell]bool)
	s.power.Reset()
	s.hazards = nil
	s.fragments = nil
	s.popups = nil

	spawn := s.motion.CellPos(s.playerCell)
	s.player = Player{
		Actor: Actor{Pos: spawn, Speed: s.cfg.Player.Speed},
		Spawn: spawn,
	}

	s.ghosts = make([]*Ghost, s.cfg.Ghosts.Count)
	for i := range s.ghosts {
		off := chamberOffsets[i%len(chamberOffsets)]
		if s.cfg.Maze.ChamberSize < 3 {
			off = Cell{}
		}
		gh := NewGhost(ghostRoster[i%len(ghostRoster)], s.motion.CellPos(s.chamber.Add(off.X, off.Y)))
		gh.Speed = s.cfg.Ghosts.Speed
		s.ghosts[i] = gh
	}
}

// checkProgress ends the stage once enough pellets are eaten.
func (s *Sim) checkProgress() {
	if s.totalPellets == 0 {
		return
	}
	ratio := float64(s.eatenPellets) / float64(s.totalPellets)
	if ratio < s.cfg.Progression.ClearRatio {
		return
	}
	s.phase = PhaseWon
	s.phaseTicks = 0
	s.emit(EventStageWon, s.motion.CellOf(s.player.Pos), s.score)
}

func (s *Sim) stepWon() {
	s.phaseTicks++
	if s.phaseTicks < s.cfg.Progression.WinDelayTicks {
		return
	}
	s.phase = PhaseCountdown
	s.phaseTicks = 0
	s.countdown = s.cfg.Progression.CountdownFrom
}

func (s *Sim) stepCountdown() {
	s.phaseTicks++
	if s.phaseTicks < s.cfg.Progression.CountdownIntervalTicks {
		return
	}
	s.phaseTicks = 0
	s.countdown--
	if s.countdown <= 0 {
		s.AdvanceStage()
	}
}
