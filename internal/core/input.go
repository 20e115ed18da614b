package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // A, Left arrow - move paddle left
	ActionRight              // D, Right arrow - move paddle right
	ActionUp                 // W, Up arrow - overlay cursor up
	ActionDown               // S, Down arrow - overlay cursor down
	ActionLaunch             // Space - launch the serving ball
	ActionConfirm            // Enter - activate the highlighted overlay item
	ActionPause              // P - pause/unpause
	ActionSettings           // Esc - open settings overlay
	ActionBack               // B - leave an overlay
	ActionHome               // H - return to the main menu
	ActionRestart            // R - new game from level 1
	ActionRetry              // T - replay the current level
	ActionToggleMusic        // M - music on/off
	ActionQuit               // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLaunch:      "Launch",
	ActionConfirm:     "Confirm",
	ActionPause:       "Pause",
	ActionSettings:    "Settings",
	ActionBack:        "Back",
	ActionHome:        "Home",
	ActionRestart:     "Restart",
	ActionRetry:       "Retry",
	ActionToggleMusic: "ToggleMusic",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Direction folds Left/Right into -1, 0 or +1.
func (f InputFrame) Direction() int {
	dir := 0
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
