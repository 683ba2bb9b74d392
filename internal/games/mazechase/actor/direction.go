// Package actor implements the moving entities of the maze chase game: the
// shared movement kernel, the player and the ghosts with their targeting
// strategies.
package actor

// Direction is a heading on the grid.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Delta returns the unit vector for the direction in screen coordinates.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}
