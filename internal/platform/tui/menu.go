package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

// MenuChoice is what the main hall asks the caller to do next.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceStart
	MenuChoiceSkins
	MenuChoiceScores
	MenuChoiceQuit
)

// Main hall entries.
const (
	hallStart = iota
	hallSkin
	hallMusic
	hallScores
	hallQuit
	hallCount
)

// HallState is the main hall settings carried between screens.
type HallState struct {
	Skin  int
	Music bool
}

// MenuModel is the Bubble Tea model for the main hall.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	state     HallState
	highScore int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, state HallState) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		state:     state,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.state.Skin = arkanoid.ClampSkin(state.Skin)
	if store != nil {
		if hs, err := store.HighScore(); err == nil {
			m.highScore = hs
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
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < hallCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.choice = MenuChoiceScores
		return m, tea.Quit

	case MenuActionSelect:
		return m.activate()
	}

	return m, nil
}

// cycle changes the value of the highlighted setting in place.
func (m *MenuModel) cycle(delta int) {
	switch m.cursor {
	case hallSkin:
		n := len(arkanoid.PaddleSkins)
		m.state.Skin = ((m.state.Skin+delta)%n + n) % n
	case hallMusic:
		m.state.Music = !m.state.Music
	}
}

func (m MenuModel) activate() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case hallStart:
		m.choice = MenuChoiceStart
	case hallSkin:
		m.choice = MenuChoiceSkins
	case hallMusic:
		m.state.Music = !m.state.Music
		return m, nil
	case hallScores:
		m.choice = MenuChoiceScores
	case hallQuit:
		m.choice = MenuChoiceQuit
	}
	return m, tea.Quit
}

// labels returns the hall entries with their current values.
func (m MenuModel) labels() []string {
	music := "Off"
	if m.state.Music {
		music = "On"
	}
	return []string{
		"Start Game",
		fmt.Sprintf("Paddle: < %s >", arkanoid.PaddleSkins[m.state.Skin].Name),
		fmt.Sprintf("Music: %s", music),
		"High Scores",
		"Quit",
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#32c8ff"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("A R K A N O I D"), m.width))
	b.WriteString("\n\n")
	if m.highScore > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("High score: %d", m.highScore)), m.width))
		b.WriteString("\n\n")
	}

	for i, label := range m.labels() {
		line := "  " + label
		if i == m.cursor {
			line = selStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// State returns the hall settings as edited by the user.
func (m MenuModel) State() HallState {
	return m.state
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	State  HallState
	Config core.RuntimeConfig
}

// Quit reports whether the user wants to leave the program.
func (r MenuResult) Quit() bool {
	return r.Choice == MenuChoiceQuit || r.Choice == MenuChoiceNone
}

// RunMenu runs the main hall and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, state HallState) (MenuResult, error) {
	model := NewMenuModel(store, cfg, state)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuChoiceQuit, State: state, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: MenuChoiceQuit, State: state, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Choice(), State: m.State(), Config: m.Config()}, nil
}
