package sim

// Tile is the content of one maze cell.
type Tile uint8

const (
	TileWall Tile = iota
	TileEmpty
	TilePellet
	TilePowerCandy
	TileChamberSpawn
	TilePlayerSpawn
	TileTombstone
	TileFruit
)

var tileNames = [...]string{
	TileWall:         "WALL",
	TileEmpty:        "EMPTY",
	TilePellet:       "PELLET",
	TilePowerCandy:   "POWER_CANDY",
	TileChamberSpawn: "HAZARD_CHAMBER_SPAWN",
	TilePlayerSpawn:  "PLAYER_SPAWN",
	TileTombstone:    "TOMBSTONE",
	TileFruit:        "FRUIT",
}

// tileCodes are the single-byte codes used by Snapshot.TileRows.
var tileCodes = [...]byte{
	TileWall:         '#',
	TileEmpty:        ' ',
	TilePellet:       '.',
	TilePowerCandy:   'o',
	TileChamberSpawn: 'H',
	TilePlayerSpawn:  'P',
	TileTombstone:    'T',
	TileFruit:        'F',
}

func (t Tile) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "UNKNOWN"
}

// MarshalText encodes the tile by name.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Code returns the one-byte map code for the tile.
func (t Tile) Code() byte {
	if int(t) < len(tileCodes) {
		return tileCodes[t]
	}
	return '?'
}

// Walkable reports whether a mover may occupy the tile without breaking it.
func (t Tile) Walkable() bool {
	return t != TileWall
}

// Edible reports whether the tile counts toward the stage's pellet total.
func (t Tile) Edible() bool {
	return t == TilePellet || t == TilePowerCandy
}

// Cell addresses a grid tile by column and row.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell offset by dx, dy.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Grid is a row-major tile map. Columns wrap horizontally; rows do not.
type Grid struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewGrid returns a grid filled with walls.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
}

func (g *Grid) wrapX(x int) int {
	x %= g.Width
	if x < 0 {
		x += g.Width
	}
	return x
}

// InBounds reports whether c lies inside the grid without wrapping.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// IsBorder reports whether c is on the outer ring of the grid.
func (g *Grid) IsBorder(c Cell) bool {
	x := g.wrapX(c.X)
	return x == 0 || x == g.Width-1 || c.Y <= 0 || c.Y >= g.Height-1
}

// At returns the tile at c. Out-of-range rows read as walls.
func (g *Grid) At(c Cell) Tile {
	if c.Y < 0 || c.Y >= g.Height {
		return TileWall
	}
	return g.tiles[c.Y*g.Width+g.wrapX(c.X)]
}

// Set writes t at c. Writes to out-of-range rows are ignored.
func (g *Grid) Set(c Cell, t Tile) {
	if c.Y < 0 || c.Y >= g.Height {
		return
	}
	g.tiles[c.Y*g.Width+g.wrapX(c.X)] = t
}

// Count returns how many cells hold any of the given tiles.
func (g *Grid) Count(ts ...Tile) int {
	n := 0
	for _, t := range g.tiles {
		for _, want := range ts {
			if t == want {
				n++
				break
			}
		}
	}
	return n
}

// Find returns the first cell holding t in row-major order.
func (g *Grid) Find(t Tile) (Cell, bool) {
	for i, v := range g.tiles {
		if v == t {
			return Cell{X: i % g.Width, Y: i / g.Width}, true
		}
	}
	return Cell{}, false
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, tiles: make([]Tile, len(g.tiles))}
	copy(c.tiles, g.tiles)
	return c
}

// Rows returns a copy of the tiles as a slice of rows.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.Height)
	for y := range rows {
		rows[y] = make([]Tile, g.Width)
		copy(rows[y], g.tiles[y*g.Width:(y+1)*g.Width])
	}
	return rows
}
