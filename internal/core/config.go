package core

// RuntimeConfig contains process-level settings passed to the game loop.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes a session for the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // 1-based level number
	GameOver bool // Run ended by losing all lives
	Won      bool // Run ended by clearing the last level
	Paused   bool // Simulation frozen
	InMenu   bool // Session is on the main menu
}

// Finished reports whether the run has ended either way.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
	Quit  bool // Player asked to leave the session
}
