package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

// fakeGame is a scripted game used to drive the models.
type fakeGame struct {
	state   core.GameState
	steps   int
	resets  int
	resized [2]int
	stopped bool
	last    core.InputFrame
	lastDt  time.Duration
}

func (f *fakeGame) ID() string                   { return "fake" }
func (f *fakeGame) Title() string                { return "Fake" }
func (f *fakeGame) Reset(cfg core.RuntimeConfig) { f.resets++ }
func (f *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake board") }
func (f *fakeGame) State() core.GameState        { return f.state }
func (f *fakeGame) Resize(w, h int)              { f.resized = [2]int{w, h} }
func (f *fakeGame) Stop()                        { f.stopped = true }

func (f *fakeGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	f.steps++
	f.last = in.Clone()
	f.lastDt = dt
	return core.StepResult{State: f.state}
}

func (f *fakeGame) Summary() core.RunSummary {
	return core.RunSummary{Score: f.state.Score, LevelReached: f.state.Level, Duration: time.Minute}
}

var _ registry.Game = (*fakeGame)(nil)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFrameDelta(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		last     time.Time
		now      time.Time
		tickRate int
		want     time.Duration
	}{
		{"first tick", time.Time{}, base, 60, time.Second / 60},
		{"default rate", time.Time{}, base, 0, time.Second / 60},
		{"elapsed", base, base.Add(20 * time.Millisecond), 60, 20 * time.Millisecond},
		{"clock went back", base, base.Add(-time.Second), 30, time.Second / 30},
		{"same instant", base, base, 50, 20 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDelta(tt.last, tt.now, tt.tickRate); got != tt.want {
				t.Errorf("frameDelta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", keyRune('w'), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", keyRune('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"p", keyRune('p'), core.ActionPause, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause, false},
		{"r", keyRune('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", keyRune('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", keyRune('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), want (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{keyRune('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{keyRune('h'), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{keyRune('b'), MenuActionBack},
		{keyRune('q'), MenuActionQuit},
		{keyRune('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func menuAfter(m MenuModel, msgs ...tea.Msg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuSelectors(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel(nil, cfg, MenuSettings{Difficulty: config.DifficultyNormal, MaxLevel: 10})

	down := tea.KeyMsg{Type: tea.KeyDown}
	left := tea.KeyMsg{Type: tea.KeyLeft}
	right := tea.KeyMsg{Type: tea.KeyRight}

	m = menuAfter(m, down, right)
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("Expected easy after one step right, got %s", m.Difficulty())
	}
	m = menuAfter(m, left, left)
	if m.Difficulty() != config.DifficultyFixed {
		t.Errorf("Expected difficulty to wrap to fixed, got %s", m.Difficulty())
	}

	m = menuAfter(m, down, left)
	if m.Level() != 10 {
		t.Errorf("Expected level to wrap from auto to 10, got %d", m.Level())
	}
	m = menuAfter(m, right, right)
	if m.Level() != 1 {
		t.Errorf("Expected level 1 after wrapping forward, got %d", m.Level())
	}

	if !strings.Contains(m.View(), "Start level: < 1 >") {
		t.Error("Expected the level selector in the menu view")
	}
}

func TestMenuPlayResult(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel(nil, cfg, MenuSettings{Difficulty: config.DifficultyHard, Level: 4})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil || !m.WantsPlay() {
		t.Fatal("Expected Enter on Play to start a game")
	}

	result := resultOf(m)
	if !result.Play || result.Quit || result.WantsScoreboard {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.Settings.Difficulty != config.DifficultyHard || result.Settings.Level != 4 {
		t.Errorf("Selections not carried over: %+v", result.Settings)
	}
}

func TestMenuShowsHighScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveSession(storage.SessionRecord{Player: "alice", Score: 4242}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, MenuSettings{})
	if !strings.Contains(m.View(), "High score: 4242") {
		t.Error("Expected the stored high score in the menu view")
	}
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg(at))
	if cmd == nil {
		t.Fatal("Expected the tick loop to continue")
	}
	return next.(Model)
}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{state: core.GameState{Score: 1200, Level: 3, GameOver: true}}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, ModelOptions{
		Store:  store,
		Player: "alice",
	})

	start := time.Now()
	m = tick(t, m, start)
	m = tick(t, m, start.Add(16*time.Millisecond))

	runs, err := store.PlayerSessions("alice", 10)
	if err != nil {
		t.Fatalf("PlayerSessions() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected one saved run, got %d", len(runs))
	}
	if runs[0].Score != 1200 || runs[0].LevelReached != 3 || runs[0].Duration != time.Minute {
		t.Errorf("Unexpected saved run: %+v", runs[0])
	}

	// A restarted run that ends again is saved again
	game.state.GameOver = false
	m = tick(t, m, start.Add(32*time.Millisecond))
	game.state.GameOver = true
	tick(t, m, start.Add(48*time.Millisecond))

	runs, _ = store.PlayerSessions("alice", 10)
	if len(runs) != 2 {
		t.Errorf("Expected two saved runs, got %d", len(runs))
	}
}

func TestModelFeedsInputAndDelta(t *testing.T) {
	game := &fakeGame{state: core.GameState{Level: 1, Lives: 3}}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, ModelOptions{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)

	start := time.Now()
	m = tick(t, m, start)
	if !game.last.Has(core.ActionLeft) {
		t.Error("Expected the buffered key in the first step")
	}
	if game.lastDt != time.Second/60 {
		t.Errorf("Expected a nominal first delta, got %v", game.lastDt)
	}

	tick(t, m, start.Add(25*time.Millisecond))
	if game.last.Has(core.ActionLeft) {
		t.Error("Expected input to be cleared after a step")
	}
	if game.lastDt != 25*time.Millisecond {
		t.Errorf("Expected a 25ms delta, got %v", game.lastDt)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, ModelOptions{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	if game.resets != 0 {
		t.Error("Expected resize not to reset the game")
	}
	if game.resized != [2]int{100, 39} {
		t.Errorf("Expected board of 100x39, got %v", game.resized)
	}
	if !strings.Contains(m.View(), "fake board") {
		t.Error("Expected the game board in the view")
	}
}

func TestModelBackAndQuitStopGame(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, ModelOptions{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() || cmd == nil {
		t.Error("Expected Esc to leave for the menu")
	}
	if !game.stopped {
		t.Error("Expected the game to be stopped")
	}

	game = &fakeGame{}
	m = NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, ModelOptions{})
	next, _ = m.Update(keyRune('q'))
	if !next.(Model).IsQuitting() || !game.stopped {
		t.Error("Expected q to stop the game and quit")
	}
}

func TestSessionModelFlow(t *testing.T) {
	var created []MenuSettings
	game := &fakeGame{}
	s := NewSessionModel(SessionOptions{
		Config:   core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Username: "bob",
		Menu:     MenuSettings{Difficulty: config.DifficultyEasy, Level: 2},
		NewGame: func(settings MenuSettings) (registry.Game, error) {
			created = append(created, settings)
			return game, nil
		},
	})
	if s.ID() == "" {
		t.Fatal("Expected a generated session ID")
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.current != screenGame || len(created) != 1 {
		t.Fatalf("Expected a game to start, screen %v, games %d", s.current, len(created))
	}
	if created[0].Difficulty != config.DifficultyEasy || created[0].Level != 2 {
		t.Errorf("Menu selections not passed to the game: %+v", created[0])
	}
	if game.resets != 1 {
		t.Errorf("Expected the game to be reset once, got %d", game.resets)
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.current != screenMenu || s.quitting {
		t.Error("Expected Esc to return to the menu without ending the session")
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("Back to menu must not quit the session")
		}
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.current != screenScores {
		t.Fatal("Expected Tab to open the scoreboard")
	}
	if !strings.Contains(s.View(), "not being recorded") {
		t.Error("Expected the no-storage notice without a store")
	}

	next, _ = s.Update(keyRune('q'))
	if !next.(SessionModel).quitting {
		t.Error("Expected q on the scoreboard to end the session")
	}
}

func TestSessionModelGameCreationFails(t *testing.T) {
	s := NewSessionModel(SessionOptions{
		Config: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Menu:   MenuSettings{Difficulty: config.DifficultyHard, Level: 3},
		NewGame: func(MenuSettings) (registry.Game, error) {
			return nil, errors.New("no such game")
		},
	})

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.current != screenMenu || s.game != nil || s.quitting {
		t.Fatalf("Expected to stay in the menu, screen %v", s.current)
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("A failed game must not end the session")
		}
	}
	if got := s.menu.Settings(); got.Difficulty != config.DifficultyHard || got.Level != 3 {
		t.Errorf("Menu selections lost: %+v", got)
	}
}
