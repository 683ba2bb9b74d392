// Package tui provides the Bubble Tea integration for the maze chase game.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. It carries the wall
// clock time the tick fired at, used to compute the frame delta.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the elapsed time between two ticks. The first tick, or
// a clock that went backwards, counts as one nominal interval.
func frameDelta(last, now time.Time, tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	nominal := time.Second / time.Duration(tickRate)
	if last.IsZero() {
		return nominal
	}
	dt := now.Sub(last)
	if dt <= 0 {
		return nominal
	}
	return dt
}
