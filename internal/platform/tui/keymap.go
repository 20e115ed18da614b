package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// GameKeyMap holds the in-game key bindings.
type GameKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Launch      key.Binding
	Confirm     key.Binding
	Pause       key.Binding
	Settings    key.Binding
	Back        key.Binding
	Home        key.Binding
	Restart     key.Binding
	Retry       key.Binding
	ToggleMusic key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Launch, k.Pause, k.Settings, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Launch, k.Pause},
		{k.Settings, k.Back, k.Home, k.ToggleMusic},
		{k.Restart, k.Retry, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left:        key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right:       key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Up:          key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "up")),
		Down:        key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "down")),
		Launch:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "launch")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Settings:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "settings")),
		Back:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Home:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Restart:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Retry:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "retry level")),
		ToggleMusic: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		Screenshot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding *key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultGameKeyMap())
}

// NewKeyMapperWith creates a key mapper over custom bindings.
func NewKeyMapperWith(keys GameKeyMap) *KeyMapper {
	km := &KeyMapper{keys: keys}
	k := &km.keys
	km.bindings = []actionBinding{
		{&k.Quit, core.ActionQuit},
		{&k.Left, core.ActionLeft},
		{&k.Right, core.ActionRight},
		{&k.Up, core.ActionUp},
		{&k.Down, core.ActionDown},
		{&k.Launch, core.ActionLaunch},
		{&k.Confirm, core.ActionConfirm},
		{&k.Pause, core.ActionPause},
		{&k.Settings, core.ActionSettings},
		{&k.Back, core.ActionBack},
		{&k.Home, core.ActionHome},
		{&k.Restart, core.ActionRestart},
		{&k.Retry, core.ActionRetry},
		{&k.ToggleMusic, core.ActionToggleMusic},
	}
	return km
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, *b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// IsScreenshot reports whether the key asks for a screen dump.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Screenshot)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left":
		return MenuActionLeft
	case "d", "right":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
