package hauntmaze

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/hauntmaze/internal/core"
	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze/sim"
)

const (
	hudHeight = 2
	cellWidth = 2 // Screen columns per maze tile
	flashTail = 120
)

var traitColors = map[sim.GhostTrait]core.Color{
	sim.TraitShadow:  core.ColorRed,
	sim.TraitSpeedy:  core.ColorPink,
	sim.TraitBashful: core.ColorCyan,
	sim.TraitPokey:   core.ColorOrange,
}

type glyph struct {
	text  string
	color core.Color
}

var tileGlyphs = map[sim.Tile]glyph{
	sim.TileWall:       {"██", core.ColorBlue},
	sim.TilePellet:     {"· ", core.ColorWhite},
	sim.TilePowerCandy: {"● ", core.ColorBrightMagenta},
	sim.TileTombstone:  {"Ω ", core.ColorGray},
	sim.TileFruit:      {"♦ ", core.ColorOrange},
}

func (g *Game) minWidth() int  { return g.cfg.Grid.Width * cellWidth }
func (g *Game) minHeight() int { return g.cfg.Grid.Height + hudHeight }

// Render draws the current state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.sim.Snapshot()

	g.renderHUD(dst, snap)

	if dst.Width() < g.minWidth() || dst.Height() < g.minHeight() {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.minWidth(), g.minHeight()))
		return
	}

	v := g.viewport(dst, snap)
	g.renderMaze(dst, snap, v)
	g.renderFragments(dst, snap, v)
	g.renderHazards(dst, snap, v)
	g.renderGhosts(dst, snap, v)
	g.renderPlayer(dst, snap, v)
	g.renderPopups(dst, snap, v)

	switch {
	case snap.Phase == sim.PhaseStart:
		g.renderOverlay(dst, "HAUNTED MAZE", "Enter: start  Tab: scores  Q: quit")
	case snap.Phase == sim.PhaseWon:
		g.renderOverlay(dst, fmt.Sprintf("Stage %d cleared!", snap.Stage), fmt.Sprintf("Score: %d", snap.Score))
	case snap.Phase == sim.PhaseCountdown:
		g.renderOverlay(dst, fmt.Sprintf("Stage %d", snap.Stage+1), fmt.Sprintf("Starting in %d", snap.Countdown))
	case snap.Phase == sim.PhaseGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R: new run  Esc: title", snap.Score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// viewport maps canvas units onto the centered board.
type viewport struct {
	board core.Rect
	tile  float64
}

func (g *Game) viewport(dst *core.Screen, snap sim.Snapshot) viewport {
	ox := (dst.Width() - g.minWidth()) / 2
	oy := hudHeight + (dst.Height()-g.minHeight())/2
	return viewport{
		board: core.NewRect(ox, oy, g.minWidth(), g.cfg.Grid.Height),
		tile:  float64(snap.TileSize),
	}
}

// project maps a canvas position to a screen cell, wrapping columns. ok is
// false when the cell falls outside the board.
func (v viewport) project(pos sim.Vec) (x, y int, ok bool) {
	cols := v.board.W
	x = int(math.Round(pos.X*cellWidth/v.tile)) % cols
	if x < 0 {
		x += cols
	}
	x += v.board.X
	y = v.board.Y + int(math.Round(pos.Y/v.tile))
	return x, y, v.board.Contains(x, y)
}

func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot) {
	lives := strings.Repeat("♥", snap.Lives)
	hud := fmt.Sprintf(" %s | Score: %d  Hi: %d  Lives: %s  Stage: %d  %3.0f%%",
		gameTitle, snap.Score, snap.HighScore, lives, snap.Stage, snap.Percent)
	if snap.PowerActive() {
		hud += fmt.Sprintf("  Power: %ds ⚡%d", (snap.PowerTicks+59)/60, snap.Charges)
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderMaze(dst *core.Screen, snap sim.Snapshot, v viewport) {
	for y, row := range snap.Tiles {
		for x, t := range row {
			gl, ok := tileGlyphs[t]
			if !ok {
				continue
			}
			dst.DrawTextColored(v.board.X+x*cellWidth, v.board.Y+y, gl.text, gl.color)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, snap sim.Snapshot, v viewport) {
	x, y, ok := v.project(snap.Player.Pos)
	if !ok {
		return
	}
	sprite, color := "()", core.ColorYellow
	if snap.PowerActive() {
		sprite, color = "{}", core.ColorBrightWhite
	}
	dst.DrawTextColored(x, y, sprite, color)
}

func (g *Game) renderGhosts(dst *core.Screen, snap sim.Snapshot, v viewport) {
	flash := snap.PowerTicks < flashTail && (snap.Tick/8)%2 == 0
	for _, gh := range snap.Ghosts {
		x, y, ok := v.project(gh.Pos)
		if !ok {
			continue
		}
		switch gh.State {
		case sim.GhostNormal:
			dst.DrawTextColored(x, y, "MM", traitColors[gh.Trait])
		case sim.GhostScared:
			color := core.ColorBlue
			if flash {
				color = core.ColorBrightWhite
			}
			dst.DrawTextColored(x, y, "mm", color)
		case sim.GhostDying:
			// Bright while fresh, gray as it fades.
			color := core.ColorBrightWhite
			if core.ClampF(gh.Fade, 0, 1) >= 0.5 {
				color = core.ColorGray
			}
			dst.DrawTextColored(x, y, "''", color)
		case sim.GhostEaten:
			dst.DrawTextColored(x, y, "°°", core.ColorGray)
		}
	}
}

func (g *Game) renderHazards(dst *core.Screen, snap sim.Snapshot, v viewport) {
	for _, p := range snap.Hazards {
		if x, y, ok := v.project(p); ok {
			dst.DrawTextColored(x, y, "Ψ", core.ColorPurple)
		}
	}
}

func (g *Game) renderFragments(dst *core.Screen, snap sim.Snapshot, v viewport) {
	for _, f := range snap.Fragments {
		x, y, ok := v.project(f.Pos)
		if !ok {
			continue
		}
		color := core.ColorBlue
		if f.Kind == sim.TileTombstone {
			color = core.ColorGray
		}
		dst.SetColored(x, y, '*', color)
	}
}

func (g *Game) renderPopups(dst *core.Screen, snap sim.Snapshot, v viewport) {
	for _, p := range snap.Popups {
		if x, y, ok := v.project(p.Pos); ok {
			dst.DrawTextColored(x, y, fmt.Sprintf("+%d", p.Points), core.ColorBrightYellow)
		}
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := core.CenteredRect(dst.Width(), dst.Height(), core.Clamp(maxLen+4, 0, dst.Width()), 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
