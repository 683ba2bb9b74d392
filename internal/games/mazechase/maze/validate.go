package maze

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that a level can be played.
// Checks:
//   - Layout is a non-empty rectangle
//   - Player spawn is inside the layout and not a wall
//   - At least one ghost spawn, none of them walls
//   - At least one pickup
//   - Every tunnel endpoint is a tunnel tile inside the layout
func Validate(l Level) error {
	if err := validateShape(l); err != nil {
		return err
	}
	if err := validateSpawns(l); err != nil {
		return err
	}
	if l.Pickups() == 0 {
		return ValidationError{Code: "NO_PICKUPS", Message: "level has no dots or power pellets"}
	}
	return validateTunnels(l)
}

// validateShape checks the layout is rectangular.
func validateShape(l Level) error {
	if l.Height() == 0 || l.Width() == 0 {
		return ValidationError{Code: "EMPTY_LAYOUT", Message: "layout has no cells"}
	}
	w := l.Width()
	for y, row := range l.Tiles {
		if len(row) != w {
			return ValidationError{
				Code:    "NOT_RECTANGULAR",
				Message: fmt.Sprintf("row %d has %d cells, expected %d", y, len(row), w),
			}
		}
	}
	return nil
}

// validateSpawns checks player and ghost spawns.
func validateSpawns(l Level) error {
	if !walkable(l, l.PlayerStart) {
		return ValidationError{
			Code:    "BAD_PLAYER_SPAWN",
			Message: fmt.Sprintf("player spawn %s is not walkable", l.PlayerStart),
		}
	}
	if len(l.GhostSpawns) == 0 {
		return ValidationError{Code: "NO_GHOST_SPAWN", Message: "layout has no ghost spawn"}
	}
	for _, c := range l.GhostSpawns {
		if !walkable(l, c) {
			return ValidationError{
				Code:    "BAD_GHOST_SPAWN",
				Message: fmt.Sprintf("ghost spawn %s is not walkable", c),
			}
		}
	}
	return nil
}

// validateTunnels checks every tunnel pair.
func validateTunnels(l Level) error {
	for i, pair := range l.Tunnels {
		for _, c := range pair {
			if !inLevel(l, c) || l.Tiles[c.Y][c.X] != Tunnel {
				return ValidationError{
					Code:    "BAD_TUNNEL",
					Message: fmt.Sprintf("tunnel pair %d endpoint %s is not a tunnel tile", i, c),
				}
			}
		}
		if pair[0] == pair[1] {
			return ValidationError{
				Code:    "BAD_TUNNEL",
				Message: fmt.Sprintf("tunnel pair %d links %s to itself", i, pair[0]),
			}
		}
	}
	return nil
}

func inLevel(l Level, c Cell) bool {
	return c.Y >= 0 && c.Y < l.Height() && c.X >= 0 && c.X < len(l.Tiles[c.Y])
}

func walkable(l Level, c Cell) bool {
	return inLevel(l, c) && l.Tiles[c.Y][c.X] != Wall
}
