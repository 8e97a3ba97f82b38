package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// scenarioItem is one row of the scenario picker.
type scenarioItem struct {
	info registry.Info
	best int // 0 if no run is stored
}

func (i scenarioItem) Title() string       { return i.info.Title }
func (i scenarioItem) FilterValue() string { return i.info.ID }

func (i scenarioItem) Description() string {
	if i.best > 0 {
		return fmt.Sprintf("%s  best %d", i.info.Description, i.best)
	}
	return i.info.Description
}

// MenuModel is the Bubble Tea model for the scenario picker.
type MenuModel struct {
	list     list.Model
	keys     MenuKeyMap
	rt       core.RuntimeConfig
	choice   string
	scores   bool
	quitting bool
}

// NewMenuModel lists every registered scenario with its best stored score.
// store may be nil.
func NewMenuModel(store *storage.Store, rt core.RuntimeConfig) MenuModel {
	infos := registry.List()
	items := make([]list.Item, 0, len(infos))
	for _, info := range infos {
		item := scenarioItem{info: info}
		if store != nil {
			if best, err := store.BestScore(info.ID); err == nil {
				item.best = best
			}
		}
		items = append(items, item)
	}

	keys := DefaultMenuKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("229")).
		BorderLeftForeground(lipgloss.Color("57"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("245")).
		BorderLeftForeground(lipgloss.Color("57"))

	l := list.New(items, delegate, rt.ScreenW, max(rt.ScreenH-1, 1))
	l.Title = "H O R D E"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// The model owns quitting so a session can tell quit from select.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Scores, keys.Quit}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return MenuModel{list: l, keys: keys, rt: rt}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu. Select, Scores and Quit end the
// program; everything else moves the list.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Scores):
			m.scores = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(scenarioItem); ok {
				m.choice = item.info.ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-1, 1))
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.list.Items()) == 0 {
		return "\n" + dimStyle.Render("  No scenarios registered.")
	}
	return "\n" + m.list.View()
}

// Choice returns the picked scenario ID, or "" if none was picked.
func (m MenuModel) Choice() string {
	return m.choice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// Runtime returns the runtime config, resized to the last window size.
func (m MenuModel) Runtime() core.RuntimeConfig {
	return m.rt
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Scenario        string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the picker as its own program and reports what was chosen.
func RunMenu(store *storage.Store, rt core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, rt), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: rt}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: rt, Quit: true}, nil
	}

	return MenuResult{
		Scenario:        m.Choice(),
		Config:          m.Runtime(),
		WantsScoreboard: m.WantsScoreboard(),
		Quit:            m.IsQuitting() || (m.Choice() == "" && !m.WantsScoreboard()),
	}, nil
}
