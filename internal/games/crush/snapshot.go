package crush

import "github.com/vovakirdan/tui-crush/internal/games/crush/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Size      int
	Rows      []string // Board in color codes, '.' for empty
	Score     int
	Moves     int
	Crushed   int
	BestChain int
	Stage     string
	Cursor    core.Position
	Selected  *core.Position
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.stage != StageIdle:
		state = StateResolving
	}

	var selected *core.Position
	if g.selected != nil {
		if pos, ok := g.selected.Location(); ok {
			selected = &pos
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Size:      g.grid.Size(),
		Rows:      g.grid.Rows(),
		Score:     g.grid.Score(),
		Moves:     g.moves,
		Crushed:   g.crushed,
		BestChain: g.bestChain,
		Stage:     g.stage.String(),
		Cursor:    g.cursor,
		Selected:  selected,
		State:     state,
	}
}
