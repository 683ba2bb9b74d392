package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

// menuEntry is one row of the main menu.
type menuEntry int

const (
	entryPlay menuEntry = iota
	entryDifficulty
	entryLevel
	entryScores
	entryQuit
)

var menuEntries = []menuEntry{entryPlay, entryDifficulty, entryLevel, entryScores, entryQuit}

// difficulties is the cycle order of the difficulty selector.
var difficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyEasy,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuSettings are the selector values the menu starts with.
type MenuSettings struct {
	Difficulty config.DifficultyPreset
	Level      int // 0 lets the config decide
	MaxLevel   int
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	difficulty     int
	level          int
	maxLevel       int
	highScore      int
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, settings MenuSettings) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		maxLevel:  settings.MaxLevel,
	}
	if m.maxLevel <= 0 {
		m.maxLevel = 10
	}
	m.level = min(max(settings.Level, 0), m.maxLevel)
	for i, d := range difficulties {
		if d == settings.Difficulty {
			m.difficulty = i
		}
	}
	if store != nil {
		if high, err := store.HighScore(); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case entryPlay:
			m.play = true
			return m, tea.Quit
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.cycle(1)
		}
	}

	return m, nil
}

// cycle moves the selector under the cursor by step, wrapping around.
func (m *MenuModel) cycle(step int) {
	switch menuEntries[m.cursor] {
	case entryDifficulty:
		n := len(difficulties)
		m.difficulty = ((m.difficulty+step)%n + n) % n
	case entryLevel:
		n := m.maxLevel + 1
		m.level = ((m.level+step)%n + n) % n
	}
}

// label returns the text of one menu row.
func (m MenuModel) label(e menuEntry) string {
	switch e {
	case entryPlay:
		return "Play"
	case entryDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", m.Difficulty())
	case entryLevel:
		level := "auto"
		if m.level > 0 {
			level = fmt.Sprintf("%d", m.level)
		}
		return fmt.Sprintf("Start level: < %s >", level)
	case entryScores:
		return "High scores"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A Z E   C H A S E"), m.width, 19))
	b.WriteString("\n\n")

	best := "No runs recorded yet"
	if m.highScore > 0 {
		best = fmt.Sprintf("High score: %d", m.highScore)
	}
	b.WriteString(centerText(menuDimStyle.Render(best), m.width, len(best)))
	b.WriteString("\n\n")

	for i, e := range menuEntries {
		line := "  " + m.label(e)
		if i == m.cursor {
			line = "> " + m.label(e)
			b.WriteString(centerText(menuCursorStyle.Render(line), m.width, len([]rune(line))))
		} else {
			b.WriteString(centerText(line, m.width, len([]rune(line))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Difficulty returns the selected difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// Level returns the selected start level, 0 for the configured one.
func (m MenuModel) Level() int {
	return m.level
}

// WantsPlay returns true if the user started a game.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Settings returns the selector values, for reopening the menu where the
// user left it.
func (m MenuModel) Settings() MenuSettings {
	return MenuSettings{Difficulty: m.Difficulty(), Level: m.level, MaxLevel: m.maxLevel}
}

// centerText centers text of the given visible width within width columns.
func centerText(text string, width, visible int) string {
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Play            bool
	Settings        MenuSettings
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// resultOf converts a finished menu model into a MenuResult.
func resultOf(m MenuModel) MenuResult {
	result := MenuResult{
		Settings: m.Settings(),
		Config:   m.Config(),
	}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.WantsPlay():
		result.Play = true
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, settings MenuSettings) (MenuResult, error) {
	model := NewMenuModel(store, cfg, settings)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Settings: settings}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Settings: settings, Quit: true}, nil
	}
	return resultOf(m), nil
}
