package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view sidebar
	sidebarWidth       = 20  // Width of the view sidebar
	maxScores          = 100 // Max runs to load
)

// scoreView is one page of the scoreboard.
type scoreView int

const (
	viewTop scoreView = iota
	viewMine
	viewStats
)

var scoreViews = []scoreView{viewTop, viewMine, viewStats}

func (v scoreView) title() string {
	switch v {
	case viewMine:
		return "My runs"
	case viewStats:
		return "Statistics"
	default:
		return "Top runs"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	view        int
	player      string
	store       *storage.Store
	runs        []storage.SessionRecord
	stats       *storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model. player selects whose
// runs the "My runs" view lists.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		player:      player,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) current() scoreView {
	return scoreViews[m.view]
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if extra := tableWidth - 60; extra > 0 {
		columns[1].Width += min(extra, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the data of the current view.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		switch m.current() {
		case viewTop:
			m.runs, m.loadErr = m.store.TopSessions(maxScores)
		case viewMine:
			m.runs, m.loadErr = m.store.PlayerSessions(m.playerName(), maxScores)
		case viewStats:
			m.stats, m.loadErr = m.store.Stats()
		}
	}
	m.updateTableRows()
}

func (m ScoreboardModel) playerName() string {
	if m.player == "" {
		return storage.AnonymousPlayer
	}
	return m.player
}

// updateTableRows updates the table with the loaded runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rank := fmt.Sprintf("#%d", i+1)
		if r.Won {
			rank += "*"
		}
		rows[i] = table.Row{
			rank,
			r.Player,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.LevelReached),
			formatDuration(r.Duration),
			r.CompletedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.view = (m.view + 1) % len(scoreViews)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.view = (m.view - 1 + len(scoreViews)) % len(scoreViews)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("HIGH SCORES - %s", m.current().title())
	b.WriteString(titleStyle.Render(centerText(title, m.width, len(title))))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the scoreboard with a sidebar of views.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range scoreViews {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.view {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.title()))
		sidebar.WriteString("\n")
	}

	sidebarRendered := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", panelStyle.Render(m.renderContent()))
}

// renderNarrowLayout renders the scoreboard with view tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(scoreViews))
	plain := 0
	for i, v := range scoreViews {
		plain += len(v.title()) + 3
		if i == m.view {
			tabs[i] = activeTabStyle.Render(v.title())
		} else {
			tabs[i] = tabStyle.Render(" " + v.title() + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if plain > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current().title())
		plain = len(tabLine)
	}
	b.WriteString(centerText(tabLine, m.width, plain))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderContent()))

	return b.String()
}

// renderContent renders the table, the statistics or an empty message.
func (m ScoreboardModel) renderContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Scores are not being recorded.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case m.current() == viewStats:
		return m.renderStats()
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// renderStats renders the aggregated statistics as label/value rows.
func (m ScoreboardModel) renderStats() string {
	st := m.stats
	if st == nil {
		st = &storage.Stats{}
	}
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Local().Format("Jan 02 15:04")
	}

	rows := [][2]string{
		{"Runs", fmt.Sprintf("%d", st.Runs)},
		{"Victories", fmt.Sprintf("%d", st.Victories)},
		{"High score", fmt.Sprintf("%d", st.HighScore)},
		{"Average score", fmt.Sprintf("%.0f", st.AvgScore)},
		{"Best level", fmt.Sprintf("%d", st.BestLevel)},
		{"Ghosts eaten", fmt.Sprintf("%d", st.GhostsEaten)},
		{"Time played", formatDuration(st.TotalPlaying)},
		{"Last played", last},
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(label.Render(r[0]))
		b.WriteString(r[1])
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
