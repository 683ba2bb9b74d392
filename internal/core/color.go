package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the maze, the actors and the HUD.
const (
	ColorDefault Color = iota
	ColorWall
	ColorPellet
	ColorPlayer
	ColorChaser
	ColorAmbusher
	ColorPatroller
	ColorWanderer
	ColorFrightened
	ColorEyes
	ColorHUD
	ColorDim
)

// String returns the palette name, used in screenshots and debug output.
func (c Color) String() string {
	switch c {
	case ColorWall:
		return "wall"
	case ColorPellet:
		return "pellet"
	case ColorPlayer:
		return "player"
	case ColorChaser:
		return "chaser"
	case ColorAmbusher:
		return "ambusher"
	case ColorPatroller:
		return "patroller"
	case ColorWanderer:
		return "wanderer"
	case ColorFrightened:
		return "frightened"
	case ColorEyes:
		return "eyes"
	case ColorHUD:
		return "hud"
	case ColorDim:
		return "dim"
	default:
		return "default"
	}
}
