package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in characters
	ScreenH   int    // Screen height in characters
	TickRate  int    // Simulation ticks per second (default 30)
	Seed      int64  // RNG seed for deterministic gameplay
	BoardSize int    // Cells per board side; 0 means the game default
	BoardFile string // Board file path or builtin board ID; empty for a random board
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  30,
		Seed:      0, // 0 means use current time in platform layer
		BoardSize: 8,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Moves    int  // Swaps made this game
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Busy     bool // Whether a move is still resolving; input is ignored
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
