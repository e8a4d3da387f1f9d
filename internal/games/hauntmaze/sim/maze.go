package sim

import (
	"math/rand"

	"github.com/vovakirdan/hauntmaze/internal/config"
)

// MazeGenerator carves perfect mazes with a randomized depth-first search
// and decorates them with pellets, candies and tombstones.
type MazeGenerator struct {
	cfg config.HauntConfig
	rng *rand.Rand
}

// NewMazeGenerator returns a generator drawing from rng.
func NewMazeGenerator(cfg config.HauntConfig, rng *rand.Rand) *MazeGenerator {
	return &MazeGenerator{cfg: cfg, rng: rng}
}

// Generate builds a new maze. Every pellet and candy is reachable from
// the player spawn without crossing a wall or a tombstone.
func (mg *MazeGenerator) Generate() *Grid {
	g := NewGrid(mg.cfg.Grid.Width, mg.cfg.Grid.Height)

	mg.carve(g, Cell{X: 1, Y: 1})
	chamber := mg.carveChamber(g)
	if mg.cfg.Maze.SideTunnels {
		mg.carveTunnels(g, chamber)
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := Cell{X: x, Y: y}
			if g.At(c) == TileEmpty {
				g.Set(c, TilePellet)
			}
		}
	}
	g.Set(chamber, TileChamberSpawn)

	spawn := mg.playerSpawn()
	g.Set(spawn, TilePlayerSpawn)

	mg.scatter(g, TilePowerCandy, mg.cfg.Maze.PowerCandies, func(c Cell) bool {
		return g.At(c) == TilePellet
	})
	mg.scatter(g, TileTombstone, mg.cfg.Maze.Tombstones, func(c Cell) bool {
		t := g.At(c)
		return (t == TilePellet || t == TileEmpty) && edibleReachable(g, spawn, c)
	})

	return g
}

// carve opens passages between odd cells using an explicit stack.
func (mg *MazeGenerator) carve(g *Grid, start Cell) {
	g.Set(start, TileEmpty)
	stack := []Cell{start}
	dirs := cardinals

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		mg.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		advanced := false
		for _, d := range dirs {
			dx, dy := d.Delta()
			next := cur.Add(2*dx, 2*dy)
			if !mg.interior(next) || g.At(next) != TileWall {
				continue
			}
			g.Set(cur.Add(dx, dy), TileEmpty)
			g.Set(next, TileEmpty)
			stack = append(stack, next)
			advanced = true
			break
		}
		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}
}

// carveChamber opens the square hazard chamber at the grid center and
// returns its center cell.
func (mg *MazeGenerator) carveChamber(g *Grid) Cell {
	center := Cell{X: g.Width / 2, Y: g.Height / 2}
	r := mg.cfg.Maze.ChamberSize / 2
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			g.Set(Cell{X: x, Y: y}, TileEmpty)
		}
	}
	return center
}

// carveTunnels opens both border cells on the first odd row of the
// chamber band, giving the wrap-around corridor an entrance on each side.
func (mg *MazeGenerator) carveTunnels(g *Grid, chamber Cell) {
	row := chamber.Y
	if row%2 == 0 {
		row--
	}
	g.Set(Cell{X: 0, Y: row}, TileEmpty)
	g.Set(Cell{X: g.Width - 1, Y: row}, TileEmpty)
}

// playerSpawn is the odd cell nearest the bottom-center.
func (mg *MazeGenerator) playerSpawn() Cell {
	x := mg.cfg.Grid.Width / 2
	if x%2 == 0 {
		x--
	}
	return Cell{X: x, Y: mg.cfg.Grid.Height - 2}
}

// scatter places up to n tiles on random cells accepted by ok.
// Placement gives up after the configured number of attempts.
func (mg *MazeGenerator) scatter(g *Grid, t Tile, n int, ok func(Cell) bool) int {
	placed := 0
	for attempt := 0; placed < n && attempt < mg.cfg.Spawns.PlacementAttempts; attempt++ {
		c := Cell{
			X: 1 + mg.rng.Intn(g.Width-2),
			Y: 1 + mg.rng.Intn(g.Height-2),
		}
		if !ok(c) {
			continue
		}
		g.Set(c, t)
		placed++
	}
	return placed
}

func (mg *MazeGenerator) interior(c Cell) bool {
	return c.X >= 1 && c.X <= mg.cfg.Grid.Width-2 && c.Y >= 1 && c.Y <= mg.cfg.Grid.Height-2
}

// passable reports whether a cell may be walked without penalty.
func passable(t Tile) bool {
	switch t {
	case TileEmpty, TilePellet, TilePowerCandy, TilePlayerSpawn, TileChamberSpawn, TileFruit:
		return true
	}
	return false
}

// edibleReachable reports whether every edible tile stays reachable from
// start if blocked is sealed off.
func edibleReachable(g *Grid, start, blocked Cell) bool {
	want := g.Count(TilePellet, TilePowerCandy)
	if g.At(blocked).Edible() {
		want--
	}
	return countReachable(g, start, blocked) == want
}

// countReachable walks passable cells from start, honoring the horizontal
// wrap, and returns how many edible tiles it visits.
func countReachable(g *Grid, start, blocked Cell) int {
	norm := func(c Cell) Cell { return Cell{X: g.wrapX(c.X), Y: c.Y} }
	blocked = norm(blocked)
	start = norm(start)
	if start == blocked || !passable(g.At(start)) {
		return 0
	}

	seen := map[Cell]bool{start: true}
	queue := []Cell{start}
	edible := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if g.At(cur).Edible() {
			edible++
		}
		for _, d := range cardinals {
			dx, dy := d.Delta()
			next := norm(cur.Add(dx, dy))
			if next == blocked || seen[next] || !passable(g.At(next)) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return edible
}
