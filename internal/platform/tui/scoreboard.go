package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/storage"
)

const maxRuns = 100

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// Run table columns; the date column absorbs spare width.
var runColumns = []table.Column{
	{Title: "Rank", Width: 5},
	{Title: "Score", Width: 8},
	{Title: "Kills", Width: 6},
	{Title: "Wave", Width: 5},
	{Title: "XP", Width: 7},
	{Title: "Ticks", Width: 8},
	{Title: "Date", Width: 12},
}

// ScoreboardKeyMap defines the scoreboard keys. Row scrolling uses the
// table's own bindings.
type ScoreboardKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding

	rows table.KeyMap
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.rows.LineUp, k.rows.LineDown, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.rows.LineUp, k.rows.LineDown, k.rows.PageUp, k.rows.PageDown},
		{k.Next, k.Prev, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next scenario")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev scenario")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		rows: table.DefaultKeyMap(),
	}
}

// ScoreboardModel shows the best stored runs per scenario.
type ScoreboardModel struct {
	store     *storage.Store // nil shows an empty board
	scenarios []registry.Info
	cursor    int
	runs      []storage.Run
	stats     *storage.ScenarioStats

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first scenario.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m := ScoreboardModel{
		store:     store,
		scenarios: registry.List(),
		table: table.New(
			table.WithFocused(true),
			table.WithKeyMap(keys.rows),
			table.WithStyles(styles),
		),
		help: help.New(),
		keys: keys,
	}
	m.resize(width, height)
	m.load()
	return m
}

// resize fits the table to the window: title, tabs, box border, stats
// and help take ten rows.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	cols := make([]table.Column, len(runColumns))
	copy(cols, runColumns)
	used := 0
	for _, c := range cols {
		used += c.Width + 2 // cell padding
	}
	last := len(cols) - 1
	if spare := width - 4 - used; spare > 0 {
		cols[last].Width = min(cols[last].Width+spare, 20)
	}

	m.table.SetColumns(cols)
	m.table.SetHeight(max(height-10, 3))
}

// load fetches runs and stats for the selected scenario.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.scenarios) > 0 {
		id := m.scenarios[m.cursor].ID
		if runs, err := m.store.TopRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.Wave),
			strconv.FormatFloat(r.XP, 'f', 0, 64),
			strconv.FormatUint(r.Ticks, 10),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.scenarios)
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next) && n > 0:
			m.cursor = (m.cursor + 1) % n
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev) && n > 0:
			m.cursor = (m.cursor + n - 1) % n
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("BEST RUNS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")

	body := emptyStyle.Render("No runs recorded yet.\nSurvive a horde to get on the board.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	b.WriteString(centerText(boxStyle.Render(body), m.width))
	b.WriteString("\n")

	if s := m.stats; s != nil && s.Runs > 0 {
		line := fmt.Sprintf("%d runs  avg %.0f  %d kills  max wave %d  last %s",
			s.Runs, s.AvgScore, s.TotalKills, s.MaxWave, s.LastPlayed.Format("Jan 02 15:04"))
		b.WriteString(centerText(dimStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders one tab per scenario, or just the current one with arrows
// when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	parts := make([]string, len(m.scenarios))
	for i, s := range m.scenarios {
		if i == m.cursor {
			parts[i] = activeTabStyle.Render(s.Title)
		} else {
			parts[i] = tabStyle.Render(s.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-4 {
		line = activeTabStyle.Render("< " + m.scenarios[m.cursor].Title + " >")
	}
	return line
}

// Scenario returns the ID of the scenario on display.
func (m ScoreboardModel) Scenario() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.cursor].ID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text, including multi-line blocks, within width cells.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunScoreboard runs the scoreboard as its own program. It reports whether
// the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
