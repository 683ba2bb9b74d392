// Package maze owns the tile layout of a maze chase level and every grid
// query the simulation needs: wall and pickup lookups, pixel/grid conversion,
// corner-sampled box collision and tunnel resolution.
package maze

import "fmt"

// Tile classifies one cell of the maze.
type Tile uint8

const (
	Empty Tile = iota
	Wall
	Dot
	PowerPellet
	GhostSpawn
	PlayerSpawn
	Tunnel
)

// String returns a human-readable name for the tile.
func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Dot:
		return "dot"
	case PowerPellet:
		return "power_pellet"
	case GhostSpawn:
		return "ghost_spawn"
	case PlayerSpawn:
		return "player_spawn"
	case Tunnel:
		return "tunnel"
	default:
		return fmt.Sprintf("tile(%d)", t)
	}
}

// IsPickup reports whether the tile is collected when the player enters it.
func (t Tile) IsPickup() bool {
	return t == Dot || t == PowerPellet
}

// Rune returns the layout character for the tile.
func (t Tile) Rune() rune {
	switch t {
	case Wall:
		return '#'
	case Dot:
		return '.'
	case PowerPellet:
		return 'o'
	case GhostSpawn:
		return 'G'
	case PlayerSpawn:
		return 'P'
	case Tunnel:
		return 'T'
	default:
		return ' '
	}
}

// ParseTile converts a layout character to a tile.
func ParseTile(r rune) (Tile, bool) {
	switch r {
	case '#':
		return Wall, true
	case '.':
		return Dot, true
	case 'o':
		return PowerPellet, true
	case 'G':
		return GhostSpawn, true
	case 'P':
		return PlayerSpawn, true
	case 'T':
		return Tunnel, true
	case ' ':
		return Empty, true
	default:
		return Empty, false
	}
}

// Cell is an integer grid coordinate.
// X increases to the right, Y increases downward.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Position is a continuous pixel coordinate.
type Position struct {
	X float64
	Y float64
}

// P is a convenience constructor for Position.
func P(x, y float64) Position {
	return Position{X: x, Y: y}
}
