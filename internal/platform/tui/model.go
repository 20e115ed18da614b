package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

// holdTicks is how long one key press keeps the paddle moving. Terminals
// report presses and repeats but never releases.
const holdTicks = 8

// Model is the Bubble Tea model for one arkanoid run.
type Model struct {
	game      *arkanoid.Game
	raster    *Rasterizer
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      *KeyMapper
	input     core.InputFrame
	holdLeft  int
	holdRight int
	quitting  bool
	home      bool // game went back to its menu
	runSaved  bool // finished run already recorded
	lastRunID string
}

// NewModel creates a Bubble Tea model driving the given game.
func NewModel(game *arkanoid.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = game.Config().Gameplay.TickRate
	}
	pf := game.Config().Playfield

	return Model{
		game:   game,
		raster: NewRasterizer(pf.Width, pf.Height),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger.With("component", "tui"),
		config: cfg,
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
	}
}

// Init starts a new run if the game sits on its menu and starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.game.State() == arkanoid.StateMenu {
		m.game.StartNewGame()
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionLeft:
		m.holdLeft, m.holdRight = holdTicks, 0
	case core.ActionRight:
		m.holdLeft, m.holdRight = 0, holdTicks
	case core.ActionNone:
	default:
		m.input.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The playfield keeps its size;
// only the cell grid it is sampled onto changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.holdLeft > 0 {
		m.input.Set(core.ActionLeft)
		m.holdLeft--
	}
	if m.holdRight > 0 {
		m.input.Set(core.ActionRight)
		m.holdRight--
	}

	result := m.game.Step(m.input)
	m.input.Clear()

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	m.recordRun()

	if m.game.State() == arkanoid.StateMenu {
		m.home = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a finished run once. A restart or retry arms it again.
func (m *Model) recordRun() {
	switch m.game.State() {
	case arkanoid.StateServing, arkanoid.StatePlaying:
		m.runSaved = false
		return
	case arkanoid.StateGameOver, arkanoid.StateWin:
	default:
		return
	}
	if m.runSaved {
		return
	}
	m.runSaved = true

	won := m.game.State() == arkanoid.StateWin
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(m.game.Score(), m.game.LevelIndex()+1, won)
	if err != nil {
		m.logger.Warn("cannot save run", "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Info("run saved", "run_id", id, "score", m.game.Score(), "won", won)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.raster.Draw(m.game.DrawList(), m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".arkanoid", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("arkanoid_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: cannot write", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.raster.Draw(m.game.DrawList(), m.screen)
	return RenderScreen(m.screen)
}

// RunResult reports how a run ended.
type RunResult struct {
	Home      bool   // back to the main hall
	Quit      bool   // leave the program
	LastRunID string // id of the last stored run, if any
}

// Run starts the Bubble Tea program for one run of the game.
func Run(game *arkanoid.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (RunResult, error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Quit: true}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Quit: true}, nil
	}
	return RunResult{Home: m.home, Quit: m.quitting, LastRunID: m.lastRunID}, nil
}
