package maze

import "math"

// Grid is the live maze of one level instance.
// Cells are stored in row-major order: index = y*W + x.
// A Grid is owned by the game loop and shared by reference with the actors;
// it is never copied per actor.
type Grid struct {
	W        int
	H        int
	CellSize int

	tiles       []Tile
	playerStart Cell
	ghostSpawns []Cell
	tunnels     [][2]Cell
	pickups     int
}

// NewGrid builds a grid from level data. The level is not retained; pickups
// cleared on the grid never leak back into the level.
func NewGrid(l Level, cellSize int) *Grid {
	g := &Grid{
		W:           l.Width(),
		H:           l.Height(),
		CellSize:    cellSize,
		playerStart: l.PlayerStart,
		ghostSpawns: append([]Cell(nil), l.GhostSpawns...),
		tunnels:     append([][2]Cell(nil), l.Tunnels...),
	}
	g.tiles = make([]Tile, g.W*g.H)
	for y, row := range l.Tiles {
		for x, t := range row {
			g.tiles[y*g.W+x] = t
			if t.IsPickup() {
				g.pickups++
			}
		}
	}
	return g
}

// InBounds returns true if the cell lies inside the grid.
func (g *Grid) InBounds(gx, gy int) bool {
	return gx >= 0 && gx < g.W && gy >= 0 && gy < g.H
}

// IsWall reports whether a cell blocks movement. Cells outside the grid are
// implicit walls.
func (g *Grid) IsWall(gx, gy int) bool {
	if !g.InBounds(gx, gy) {
		return true
	}
	return g.tiles[gy*g.W+gx] == Wall
}

// TileAt returns the tile at a cell, or Empty outside the grid.
func (g *Grid) TileAt(gx, gy int) Tile {
	if !g.InBounds(gx, gy) {
		return Empty
	}
	return g.tiles[gy*g.W+gx]
}

// SetTile changes a cell. Only clearing a pickup to Empty is accepted; any
// other transition and any out-of-bounds cell are ignored.
func (g *Grid) SetTile(gx, gy int, t Tile) {
	if !g.InBounds(gx, gy) || t != Empty {
		return
	}
	i := gy*g.W + gx
	if !g.tiles[i].IsPickup() {
		return
	}
	g.tiles[i] = Empty
	g.pickups--
}

// CheckCollision samples the four corner cells of the box (x, y, w, h) and
// reports whether any of them is a wall. Corner sampling is exact as long as
// the box is no larger than one cell.
func (g *Grid) CheckCollision(x, y, w, h float64) bool {
	cs := float64(g.CellSize)
	left := int(math.Floor(x / cs))
	right := int(math.Floor((x + w - 1) / cs))
	top := int(math.Floor(y / cs))
	bottom := int(math.Floor((y + h - 1) / cs))

	return g.IsWall(left, top) ||
		g.IsWall(right, top) ||
		g.IsWall(left, bottom) ||
		g.IsWall(right, bottom)
}

// PixelToGrid returns the cell containing a pixel coordinate.
func (g *Grid) PixelToGrid(x, y float64) Cell {
	cs := float64(g.CellSize)
	return Cell{X: int(math.Floor(x / cs)), Y: int(math.Floor(y / cs))}
}

// GridToPixel returns the pixel centre of a cell.
func (g *Grid) GridToPixel(gx, gy int) Position {
	cs := float64(g.CellSize)
	return Position{X: float64(gx)*cs + cs/2, Y: float64(gy)*cs + cs/2}
}

// IsTunnel reports whether a cell is a tunnel tile.
func (g *Grid) IsTunnel(gx, gy int) bool {
	return g.TileAt(gx, gy) == Tunnel
}

// TunnelExit returns the partner of a registered tunnel endpoint. The second
// result is false when the cell is not part of a complete pair.
func (g *Grid) TunnelExit(gx, gy int) (Cell, bool) {
	c := Cell{X: gx, Y: gy}
	for _, pair := range g.tunnels {
		switch c {
		case pair[0]:
			return pair[1], true
		case pair[1]:
			return pair[0], true
		}
	}
	return Cell{}, false
}

// RemainingPickups returns how many dots and power pellets are left.
func (g *Grid) RemainingPickups() int {
	return g.pickups
}

// PlayerStart returns the player spawn cell.
func (g *Grid) PlayerStart() Cell {
	return g.playerStart
}

// GhostSpawn returns the primary ghost spawn cell.
func (g *Grid) GhostSpawn() Cell {
	if len(g.ghostSpawns) == 0 {
		return g.playerStart
	}
	return g.ghostSpawns[0]
}

// GhostSpawns returns all ghost spawn cells in reading order.
func (g *Grid) GhostSpawns() []Cell {
	return append([]Cell(nil), g.ghostSpawns...)
}

// PixelWidth returns the maze width in pixels.
func (g *Grid) PixelWidth() float64 {
	return float64(g.W * g.CellSize)
}

// PixelHeight returns the maze height in pixels.
func (g *Grid) PixelHeight() float64 {
	return float64(g.H * g.CellSize)
}

// Tiles returns a copy of the tile layout as rows.
func (g *Grid) Tiles() [][]Tile {
	rows := make([][]Tile, g.H)
	for y := range rows {
		rows[y] = append([]Tile(nil), g.tiles[y*g.W:(y+1)*g.W]...)
	}
	return rows
}
