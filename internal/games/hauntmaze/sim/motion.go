package sim

import (
	"math"

	"github.com/vovakirdan/hauntmaze/internal/config"
)

// Actor is the movement state shared by the player and ghosts.
// Pos is the top-left corner of a tile-sized box.
type Actor struct {
	Pos   Vec       `json:"pos"`
	Dir   Direction `json:"dir"`
	Next  Direction `json:"next"`
	Speed float64   `json:"speed"`
}

// Motion resolves tile-locked movement against a grid.
type Motion struct {
	tile   float64
	buffer float64
	width  float64
	height float64
	margin float64
}

// NewMotion builds a Motion from the grid and motion settings.
func NewMotion(cfg config.HauntConfig) Motion {
	tile := float64(cfg.Grid.TileSize)
	return Motion{
		tile:   tile,
		buffer: cfg.Motion.Buffer,
		width:  float64(cfg.CanvasWidth()),
		height: float64(cfg.CanvasHeight()),
		margin: float64(cfg.Motion.DriftMarginTiles) * tile,
	}
}

// TileSize returns the tile edge in canvas units.
func (m Motion) TileSize() float64 { return m.tile }

// CellPos returns the canvas position of a cell's top-left corner.
func (m Motion) CellPos(c Cell) Vec {
	return Vec{X: float64(c.X) * m.tile, Y: float64(c.Y) * m.tile}
}

// CellOf returns the cell an actor at pos mostly occupies.
func (m Motion) CellOf(pos Vec) Cell {
	cols := int(m.width / m.tile)
	x := int(math.Round(pos.X/m.tile)) % cols
	if x < 0 {
		x += cols
	}
	return Cell{X: x, Y: int(math.Round(pos.Y / m.tile))}
}

// Aligned reports whether pos sits exactly on a tile corner.
func (m Motion) Aligned(pos Vec) bool {
	return math.Mod(pos.X, m.tile) == 0 && math.Mod(pos.Y, m.tile) == 0
}

// Probe returns the cell just past the actor's leading edge in dir.
// The perpendicular coordinate is taken at the actor's center.
func (m Motion) Probe(pos Vec, dir Direction) Cell {
	half := m.tile / 2
	var p Vec
	switch dir {
	case DirUp:
		p = Vec{X: pos.X + half, Y: pos.Y - m.buffer}
	case DirDown:
		p = Vec{X: pos.X + half, Y: pos.Y + m.tile - 1 + m.buffer}
	case DirLeft:
		p = Vec{X: pos.X - m.buffer, Y: pos.Y + half}
	case DirRight:
		p = Vec{X: pos.X + m.tile - 1 + m.buffer, Y: pos.Y + half}
	default:
		p = Vec{X: pos.X + half, Y: pos.Y + half}
	}
	return Cell{X: int(math.Floor(p.X / m.tile)), Y: int(math.Floor(p.Y / m.tile))}
}

// CanMove reports whether a mover at pos may travel in dir.
// Phasing movers pass through interior walls; border walls always block.
func (m Motion) CanMove(g *Grid, pos Vec, dir Direction, phasing bool) bool {
	if dir == DirNone {
		return false
	}
	c := m.Probe(pos, dir)
	if c.Y < 0 || c.Y >= g.Height {
		return false
	}
	if g.At(c) == TileWall {
		return phasing && !g.IsBorder(c)
	}
	return true
}

// Turn applies the queued heading when the actor is aligned and the turn is legal.
// The queue is kept until it can be honored.
func (m Motion) Turn(a *Actor, g *Grid, phasing bool) {
	if a.Next == DirNone || !m.Aligned(a.Pos) {
		return
	}
	if m.CanMove(g, a.Pos, a.Next, phasing) {
		a.Dir = a.Next
		a.Next = DirNone
	}
}

// Advance moves the actor one tick along its heading. A blocked actor
// that is off the lattice is snapped to the nearest tile corner.
func (m Motion) Advance(a *Actor, g *Grid, phasing bool) bool {
	if a.Dir != DirNone && m.CanMove(g, a.Pos, a.Dir, phasing) {
		a.Pos = m.wrap(m.advance(a.Pos, a.Dir, a.Speed))
		return true
	}
	if !m.Aligned(a.Pos) {
		a.Pos = m.Snap(a.Pos)
	}
	return false
}

// Step is Turn followed by Advance.
func (m Motion) Step(a *Actor, g *Grid, phasing bool) bool {
	m.Turn(a, g, phasing)
	return m.Advance(a, g, phasing)
}

// Snap rounds pos to the nearest tile corner.
func (m Motion) Snap(pos Vec) Vec {
	return m.wrap(Vec{
		X: math.Round(pos.X/m.tile) * m.tile,
		Y: math.Round(pos.Y/m.tile) * m.tile,
	})
}

// Lost reports whether pos has drifted more than the margin past the canvas.
func (m Motion) Lost(pos Vec) bool {
	return pos.X < -m.margin || pos.X > m.width+m.margin ||
		pos.Y < -m.margin || pos.Y > m.height+m.margin
}

// advance moves pos by speed, never stepping past the next tile boundary,
// so actors always land on the lattice whatever their speed.
func (m Motion) advance(pos Vec, dir Direction, speed float64) Vec {
	dx, dy := dir.Delta()
	switch {
	case dx > 0:
		pos.X += math.Min(speed, m.tile-math.Mod(pos.X, m.tile))
	case dx < 0:
		pos.X -= math.Min(speed, m.toBoundary(pos.X))
	case dy > 0:
		pos.Y += math.Min(speed, m.tile-math.Mod(pos.Y, m.tile))
	case dy < 0:
		pos.Y -= math.Min(speed, m.toBoundary(pos.Y))
	}
	return pos
}

func (m Motion) toBoundary(v float64) float64 {
	r := math.Mod(v, m.tile)
	if r == 0 {
		return m.tile
	}
	return r
}

func (m Motion) wrap(pos Vec) Vec {
	if pos.X < 0 {
		pos.X += m.width
	} else if pos.X >= m.width {
		pos.X -= m.width
	}
	return pos
}
