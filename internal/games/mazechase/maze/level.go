package maze

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Level is static level data: the layout plus the spawn and tunnel markers
// derived from it. It is the input of NewGrid and is never mutated by play.
type Level struct {
	Number      int
	Name        string
	Tiles       [][]Tile
	PlayerStart Cell
	GhostSpawns []Cell
	Tunnels     [][2]Cell
	FilePath    string
}

// Width returns the number of columns.
func (l Level) Width() int {
	if len(l.Tiles) == 0 {
		return 0
	}
	return len(l.Tiles[0])
}

// Height returns the number of rows.
func (l Level) Height() int {
	return len(l.Tiles)
}

// Pickups counts dots and power pellets in the layout.
func (l Level) Pickups() int {
	n := 0
	for _, row := range l.Tiles {
		for _, t := range row {
			if t.IsPickup() {
				n++
			}
		}
	}
	return n
}

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Level   int       `yaml:"level"`
	Name    string    `yaml:"name"`
	Layout  []string  `yaml:"layout"`
	Tunnels [][2]Cell `yaml:"tunnels,omitempty"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	l, err := ParseLayout(yl.Layout)
	if err != nil {
		return Level{}, err
	}
	l.Number = yl.Level
	l.Name = yl.Name
	if len(yl.Tunnels) > 0 {
		l.Tunnels = yl.Tunnels
	}
	if err := Validate(l); err != nil {
		return Level{}, err
	}
	return l, nil
}

// ParseLayout converts ASCII rows into a level. Spawn markers are collected
// in reading order. Tunnel tiles sharing a row are paired outermost-first
// unless the caller overrides Tunnels afterwards.
func ParseLayout(rows []string) (Level, error) {
	l := Level{Tiles: make([][]Tile, len(rows))}
	playerFound := false

	for y, row := range rows {
		runes := []rune(row)
		l.Tiles[y] = make([]Tile, len(runes))
		for x, r := range runes {
			t, ok := ParseTile(r)
			if !ok {
				return Level{}, ValidationError{
					Code:    "BAD_TILE",
					Message: fmt.Sprintf("unknown tile %q at %s", r, C(x, y)),
				}
			}
			l.Tiles[y][x] = t
			switch t {
			case PlayerSpawn:
				if playerFound {
					return Level{}, ValidationError{
						Code:    "DUPLICATE_PLAYER",
						Message: fmt.Sprintf("second player spawn at %s", C(x, y)),
					}
				}
				playerFound = true
				l.PlayerStart = C(x, y)
			case GhostSpawn:
				l.GhostSpawns = append(l.GhostSpawns, C(x, y))
			}
		}
	}

	if !playerFound {
		return Level{}, ValidationError{Code: "NO_PLAYER", Message: "layout has no player spawn"}
	}
	l.Tunnels = pairTunnels(l.Tiles)
	return l, nil
}

// pairTunnels pairs tunnel tiles row by row, outermost first.
func pairTunnels(tiles [][]Tile) [][2]Cell {
	var pairs [][2]Cell
	for y, row := range tiles {
		var xs []int
		for x, t := range row {
			if t == Tunnel {
				xs = append(xs, x)
			}
		}
		for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
			pairs = append(pairs, [2]Cell{C(xs[i], y), C(xs[j], y)})
		}
	}
	return pairs
}
