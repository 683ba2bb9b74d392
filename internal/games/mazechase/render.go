package mazechase

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/actor"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

const (
	cellChars   = 2 // Terminal columns per maze cell
	hudHeight   = 2
	hudMinWidth = 48

	// Frightened ghosts start flashing when power mode is about to end.
	flashWindow = 2 * time.Second
)

// Resize records new screen dimensions and re-checks whether the maze fits.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h

	mw, mh := 28, 31
	if g.grid != nil {
		mw, mh = g.grid.W, g.grid.H
	}
	g.tooSmall = w < mw*cellChars || h < mh+hudHeight
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.grid == nil {
		g.renderError(dst)
		return
	}

	boardW := g.grid.W * cellChars
	boardX := max((g.screenW-boardW)/2, 0)
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderMaze(dst, boardX, boardY)
	g.renderGhosts(dst, boardX, boardY)
	g.renderPlayer(dst, boardX, boardY)
	g.renderOverlay(dst, boardX, boardY, boardW)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "No level could be loaded")
	if g.err != nil {
		dst.DrawTextCentered(y+1, g.err.Error())
	}
}

// renderHUD draws score, level, lives and the power timer.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	w := max(boardW, hudMinWidth)
	x := max(boardX-(w-boardW)/2, 0)

	dst.DrawTextColored(x, 0, fmt.Sprintf("Score: %d", g.score), core.ColorHUD)
	level := fmt.Sprintf("Level %d/%d", g.level, g.cfg.Gameplay.MaxLevel)
	if g.levelName != "" {
		level += " " + g.levelName
	}
	dst.DrawTextColored(x+w-len([]rune(level)), 0, level, core.ColorHUD)

	dst.DrawTextColored(x, 1, strings.TrimSpace(strings.Repeat("() ", g.lives)), core.ColorPlayer)
	if g.powerActive {
		power := fmt.Sprintf("POWER %.1fs", max(g.powerDeadline-g.clock, 0).Seconds())
		dst.DrawTextColored(x+(w-len(power))/2, 1, power, core.ColorFrightened)
	}
	left := fmt.Sprintf("Dots: %d", g.grid.RemainingPickups())
	dst.DrawTextColored(x+w-len(left), 1, left, core.ColorDim)
}

// renderMaze draws walls and pickups.
func (g *Game) renderMaze(dst *core.Screen, ox, oy int) {
	for y := 0; y < g.grid.H; y++ {
		for x := 0; x < g.grid.W; x++ {
			px := ox + x*cellChars
			py := oy + y
			switch g.grid.TileAt(x, y) {
			case maze.Wall:
				dst.DrawTextColored(px, py, "██", core.ColorWall)
			case maze.Dot:
				dst.SetColored(px, py, '·', core.ColorPellet)
			case maze.PowerPellet:
				dst.SetColored(px, py, '●', core.ColorPellet)
			}
		}
	}
}

// playerSprite returns the glyphs for the player's heading and mouth.
func playerSprite(dir actor.Direction, open bool) string {
	if !open {
		return "()"
	}
	switch dir {
	case actor.Left:
		return ">)"
	case actor.Up:
		return "\\/"
	case actor.Down:
		return "/\\"
	default:
		return "(<"
	}
}

func (g *Game) renderPlayer(dst *core.Screen, ox, oy int) {
	c := g.player.Cell(g.grid)
	sprite := playerSprite(g.player.Dir, g.player.MouthAngle() > 0)
	if !g.player.Alive {
		sprite = "xx"
	}
	dst.DrawTextColored(ox+c.X*cellChars, oy+c.Y, sprite, core.ColorPlayer)
}

// ghostColor maps a ghost kind to its palette entry.
func ghostColor(k actor.Kind) core.Color {
	switch k {
	case actor.Ambusher:
		return core.ColorAmbusher
	case actor.Patroller:
		return core.ColorPatroller
	case actor.Wanderer:
		return core.ColorWanderer
	default:
		return core.ColorChaser
	}
}

func (g *Game) renderGhosts(dst *core.Screen, ox, oy int) {
	flashing := g.powerActive && g.powerDeadline-g.clock < flashWindow
	for _, gh := range g.ghosts {
		c := g.grid.PixelToGrid(gh.Pos.X, gh.Pos.Y)
		sprite, color := "MM", ghostColor(gh.Kind())
		if gh.Frame()%2 == 1 {
			sprite = "WW"
		}
		switch gh.State {
		case actor.Frightened:
			sprite, color = "~~", core.ColorFrightened
			if flashing && gh.Frame()%2 == 1 {
				color = core.ColorEyes
			}
		case actor.Eyes:
			sprite, color = "°°", core.ColorEyes
		}
		dst.DrawTextColored(ox+c.X*cellChars, oy+c.Y, sprite, color)
	}
}

// renderOverlay draws the phase banner over the maze.
func (g *Game) renderOverlay(dst *core.Screen, ox, oy, boardW int) {
	var lines []string
	switch g.phase {
	case PhaseReady:
		lines = []string{"READY!", "Press Enter to start"}
	case PhasePaused:
		lines = []string{"PAUSED", "P to resume"}
	case PhaseLevelComplete:
		lines = []string{fmt.Sprintf("Level %d cleared!", g.level), "Enter for next level"}
	case PhaseGameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score: %d", g.score), "R to restart  Q to quit"}
	case PhaseVictory:
		lines = []string{"YOU WIN!", fmt.Sprintf("Score: %d", g.score), "R to play again  Q to quit"}
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	box := core.NewRect(ox+(boardW-w)/2, oy+(g.grid.H-h)/2, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (w-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, core.ColorHUD)
	}
}
