package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mazechase/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorWall:       lipgloss.NewStyle().Foreground(lipgloss.Color("21")),
	core.ColorPellet:     lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	core.ColorPlayer:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorChaser:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorAmbusher:   lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorPatroller:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWanderer:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorFrightened: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorEyes:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorDim:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
