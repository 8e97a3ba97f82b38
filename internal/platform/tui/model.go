package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/sim"
	"github.com/vovakirdan/horde/internal/storage"
)

// Rows under the arena: HUD and help.
const chromeRows = 2

// Options configures one terminal run.
type Options struct {
	Scenario string
	Config   config.Config
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil disables run history
	Logger   *log.Logger    // nil discards

	FPS        int     // Display frames per second; 0 uses the tick rate
	ViewScale  float64 // World units per column; 0 uses sim.DefaultViewScale
	QuitOnBack bool    // Back exits the program instead of returning to a menu
}

// frameCache holds the last rendered frame so a frame whose ticks panicked
// can repeat it instead of drawing half-updated state.
type frameCache struct {
	text string
	skip bool
}

// GameModel is the Bubble Tea model that drives one simulation run.
type GameModel struct {
	opts   Options
	world  *sim.World
	driver *sim.Driver
	screen *core.Screen
	input  *inputState
	keys   KeyMap
	help   help.Model
	cache  *frameCache
	logger *log.Logger

	last       time.Time
	width      int
	height     int
	quitting   bool
	backToMenu bool
	saved      bool
}

// NewGameModel builds the world for the scenario and wraps it in a model.
func NewGameModel(opts Options) (GameModel, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	world, err := registry.NewWorld(opts.Scenario, opts.Config, opts.Runtime, sim.Options{Logger: opts.Logger})
	if err != nil {
		return GameModel{}, err
	}
	cfg := world.Config()

	if opts.FPS <= 0 {
		opts.FPS = world.RuntimeConfig().TickRate
	}
	clock := sim.NewClock(world.RuntimeConfig().FixedStep(), cfg.Tick.MaxTicksPerFrame)

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return GameModel{
		opts:   opts,
		world:  world,
		driver: sim.NewDriver(world, clock, opts.Logger),
		screen: core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-chromeRows, 1)),
		input:  newInputState(),
		keys:   DefaultKeyMap(),
		help:   h,
		cache:  &frameCache{},
		logger: opts.Logger,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return frameCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.world.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if state.GameOver || state.Paused {
			m.backToMenu = true
			if m.opts.QuitOnBack {
				return m, tea.Quit
			}
			return m, nil
		}
		// Esc during a run pauses first.
		m.input.press(core.ActionPause, time.Now())
		return m, nil

	case key.Matches(msg, m.keys.Restart) && state.GameOver:
		// A fresh seed per restart; the world replays a seed exactly.
		m.world.Restart(time.Now().UnixNano())
		m.input.reset()
		m.driver.Clock().Reset()
		m.saved = false
		return m, nil
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.input.press(a, time.Now())
	}
	return m, nil
}

// handleFrame advances the simulation by the wall time since the last frame.
func (m GameModel) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	n, err := m.driver.Frame(elapsed, m.input.frame(now))
	if err != nil {
		m.cache.skip = true
	}
	if n > 0 {
		m.input.consume()
	}

	if m.world.State().GameOver && !m.saved {
		m.saveRun()
		m.saved = true
	}

	return m, frameCmd(m.opts.FPS)
}

// saveRun records the finished run. Storage failures never stop the game.
func (m *GameModel) saveRun() {
	if m.opts.Store == nil {
		return
	}
	run, err := storage.RunFromWorld(m.opts.Scenario, m.world)
	if err != nil {
		m.logger.Warn("could not summarize run", "error", err)
		return
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "scenario", m.opts.Scenario, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.world.Render(m.screen, m.opts.ViewScale)

	dir := filepath.Join(os.Getenv("HOME"), ".horde", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.Scenario, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.cache.skip {
		m.cache.skip = false
		return m.cache.text
	}

	m.world.Render(m.screen, m.opts.ViewScale)
	drawOverlay(m.screen, m.world.State())

	m.cache.text = RenderScreen(m.screen) + "\n" + hudLine(m.world, m.width) + "\n" + m.help.View(m.keys)
	return m.cache.text
}

// World returns the simulation the model drives.
func (m GameModel) World() *sim.World {
	return m.world
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one scenario. It reports
// whether the player left with Back rather than Quit.
func Run(opts Options) (backToMenu bool, err error) {
	opts.QuitOnBack = true
	model, err := NewGameModel(opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
