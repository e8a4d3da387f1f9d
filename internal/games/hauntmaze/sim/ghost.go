package sim

// GhostState is the lifecycle state of a ghost.
type GhostState string

const (
	GhostNormal GhostState = "NORMAL"
	GhostScared GhostState = "SCARED"
	GhostDying  GhostState = "DYING"
	GhostEaten  GhostState = "EATEN"
)

// GhostTrait names a ghost's cosmetic identity.
type GhostTrait string

const (
	TraitShadow  GhostTrait = "shadow"
	TraitSpeedy  GhostTrait = "speedy"
	TraitBashful GhostTrait = "bashful"
	TraitPokey   GhostTrait = "pokey"
)

var ghostRoster = [...]GhostTrait{TraitShadow, TraitSpeedy, TraitBashful, TraitPokey}

// chamberOffsets are the starting cells of ghosts relative to the chamber center.
var chamberOffsets = [...]Cell{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}}

// Ghost is a maze monster. State changes only through the transition
// methods below, which ignore requests that do not apply.
type Ghost struct {
	Actor
	Trait      GhostTrait `json:"trait"`
	State      GhostState `json:"state"`
	DeathTimer int        `json:"death_timer"`
	Spawn      Vec        `json:"spawn"`
}

// NewGhost returns a NORMAL ghost standing at spawn.
func NewGhost(trait GhostTrait, spawn Vec) *Ghost {
	return &Ghost{
		Actor: Actor{Pos: spawn},
		Trait: trait,
		State: GhostNormal,
		Spawn: spawn,
	}
}

// Active reports whether the ghost roams the maze and can collide.
func (g *Ghost) Active() bool {
	return g.State == GhostNormal || g.State == GhostScared
}

// Scare turns a NORMAL ghost SCARED.
func (g *Ghost) Scare() bool {
	if g.State != GhostNormal {
		return g.State == GhostScared
	}
	g.State = GhostScared
	return true
}

// Calm returns a SCARED ghost to NORMAL.
func (g *Ghost) Calm() bool {
	if g.State != GhostScared {
		return false
	}
	g.State = GhostNormal
	return true
}

// Kill starts the death animation of a SCARED ghost.
func (g *Ghost) Kill(ticks int) bool {
	if g.State != GhostScared {
		return false
	}
	g.State = GhostDying
	g.DeathTimer = ticks
	g.Dir = DirNone
	g.Next = DirNone
	return true
}

// Die advances the death animation by one tick. When the timer runs out
// the ghost is moved home and becomes EATEN; Die then reports true.
func (g *Ghost) Die(rise float64, home Vec) bool {
	if g.State != GhostDying {
		return false
	}
	g.Pos.Y -= rise
	g.DeathTimer--
	if g.DeathTimer > 0 {
		return false
	}
	g.DeathTimer = 0
	g.State = GhostEaten
	g.Pos = home
	return true
}

// Respawn returns an EATEN ghost to play, scared if power mode is running.
func (g *Ghost) Respawn(scared bool) bool {
	if g.State != GhostEaten {
		return false
	}
	g.State = GhostNormal
	if scared {
		g.State = GhostScared
	}
	g.Dir = DirNone
	g.Next = DirNone
	return true
}

// Reset puts the ghost back at its spawn as NORMAL.
func (g *Ghost) Reset() {
	g.State = GhostNormal
	g.DeathTimer = 0
	g.Pos = g.Spawn
	g.Dir = DirNone
	g.Next = DirNone
}

// DeathProgress returns how far the death animation has run, from 0 to 1.
func (g *Ghost) DeathProgress(total int) float64 {
	if g.State != GhostDying || total <= 0 {
		return 0
	}
	return 1 - float64(g.DeathTimer)/float64(total)
}
