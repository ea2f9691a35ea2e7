// Package crush adapts the match-3 rules engine to the platform Game interface.
// It sequences the engine's discrete steps (swap, crush, collapse) over
// simulation ticks so the platform can animate them.
package crush

import (
	"math/rand"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-crush/internal/core"
	"github.com/vovakirdan/tui-crush/internal/games/crush/boards"
	"github.com/vovakirdan/tui-crush/internal/games/crush/core"
	"github.com/vovakirdan/tui-crush/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModePlayer Mode = "crush"      // Player picks every swap
	ModeAuto   Mode = "crush_auto" // The engine plays random legal moves
)

// Board size limits.
const (
	DefaultBoardSize = 8
	MinBoardSize     = boards.MinSize
	MaxBoardSize     = boards.MaxSize
)

// maxChain bounds how many stage transitions one Step may run when
// stage durations are zero.
const maxChain = 1000

// Stage is the presentation state while a move resolves.
// Input is only accepted in StageIdle.
type Stage int

const (
	StageIdle       Stage = iota
	StageSwapping         // Swapped pair animating into place
	StageCrushing         // Crush groups flashing before removal
	StageCollapsing       // Tokens falling, new tokens dropping in
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSwapping:
		return "swapping"
	case StageCrushing:
		return "crushing"
	case StageCollapsing:
		return "collapsing"
	default:
		return "unknown"
	}
}

// motion is a token travelling between cells during a stage.
// Rows may be negative for tokens dropping in from above the board.
type motion struct {
	fromRow, fromCol int
	toRow, toCol     int
}

// Game implements match-3 on top of the rules engine.
type Game struct {
	mode   Mode
	rng    *rand.Rand
	tick   uint64
	logger *log.Logger
	timing Timing
	hints  bool

	grid        *core.Grid
	rules       *core.Rules
	unsubscribe func()
	board       *boards.Board // Fixed opening board, nil for random deals

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool

	// Move resolution
	stage      Stage
	stageTicks int
	pending    []core.Group
	motions    map[*core.Token]motion
	chain      int // Crush rounds in the current move
	bestChain  int

	// Player input
	cursor    core.Position
	selected  *core.Token
	hint      core.Move
	hintTicks int
	autoTicks int

	// Stats
	moves     int
	crushed   int
	lastColor core.Color
	hasLast   bool

	message      string
	messageTicks int
	gameOver     bool
	paused       bool
}

// New creates a player-driven game.
func New() *Game {
	return &Game{mode: ModePlayer}
}

// NewAuto creates a game that plays itself.
func NewAuto() *Game {
	return &Game{mode: ModeAuto}
}

func init() {
	registry.Register(string(ModePlayer), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeAuto), func() registry.Game {
		return NewAuto()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAuto {
		return "Crush (Auto)"
	}
	return "Crush"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeAuto {
		return "Watch the engine play random legal moves"
	}
	return "Swap neighbouring candies to line up three or more"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	s := CurrentSettings()
	g.logger = s.Logger
	g.timing = s.Timing
	g.hints = s.HintsEnabled

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.message = ""
	g.messageTicks = 0

	size := cfg.BoardSize
	g.board = nil
	if cfg.BoardFile != "" {
		b, err := boards.Resolve(cfg.BoardFile)
		if err != nil {
			g.logger.Error("loading board", "board", cfg.BoardFile, "err", err)
			g.flash("Board not found, dealing a random one")
		} else {
			g.board = &b
			size = b.Size
		}
	}
	if size == 0 {
		size = DefaultBoardSize
	}
	size = platformcore.Clamp(size, MinBoardSize, MaxBoardSize)

	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.grid = core.NewGrid(size, core.WithLogger(g.logger))
	g.unsubscribe = g.grid.Subscribe(g.onEvent)
	g.rules = core.NewRules(g.grid, g.rng)

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()

	g.deal()
}

// deal starts a fresh game on the current grid.
func (g *Game) deal() {
	g.enter(StageIdle)
	g.pending = nil
	g.chain = 0
	g.bestChain = 0
	g.cursor = core.Position{}
	g.selected = nil
	g.clearHint()
	g.autoTicks = 0
	g.moves = 0
	g.crushed = 0
	g.hasLast = false
	g.gameOver = false

	if g.board != nil {
		err := g.rules.NewGameFrom(g.board.Rows)
		if err == nil {
			g.logger.Debug("dealt fixed board", "board", g.board.ID)
			// Fixed boards may open with runs; resolve them like a move.
			g.resolve()
			return
		}
		g.logger.Error("applying board", "board", g.board.ID, "err", err)
	}

	g.rules.NewGame()
	g.logger.Debug("dealt random board", "size", g.grid.Size())
	g.checkGameOver()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardExtent(g.grid.Size())
	minW := platformcore.Max(boardW, minHUDWidth)
	minH := boardH + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.grid != nil {
		g.checkScreenSize()
	}
}

// onEvent observes the grid so stats and animations follow engine changes.
func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.RemoveEvent:
		if g.stage == StageCrushing {
			g.crushed++
		}
	case core.ScoreEvent:
		if ev.Token != nil {
			g.lastColor = ev.Token.Color()
			g.hasLast = true
		}
	case core.MoveEvent:
		if g.stage == StageSwapping || g.stage == StageCollapsing {
			g.motions[ev.Token] = motion{
				fromRow: ev.FromRow, fromCol: ev.FromCol,
				toRow: ev.ToRow, toCol: ev.ToCol,
			}
		}
	case core.AddEvent:
		if g.stage == StageCollapsing && ev.HasSpawn {
			g.motions[ev.Token] = motion{
				fromRow: ev.Spawn.Row, fromCol: ev.Spawn.Col,
				toRow: ev.ToRow, toCol: ev.ToCol,
			}
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.tickTimers()

	// Restart after game over is handled by the platform
	if g.gameOver {
		if in.Has(platformcore.ActionNewGame) {
			g.deal()
		}
		return platformcore.StepResult{State: g.State()}
	}

	// Ignore input until the previous move has fully resolved
	if g.stage != StageIdle {
		g.advance()
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionNewGame) {
		g.deal()
		return platformcore.StepResult{State: g.State()}
	}

	if g.mode == ModeAuto {
		g.stepAuto()
	} else {
		g.handleInput(in)
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) tickTimers() {
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = core.Move{}
		}
	}
}

// handleInput applies one tick of player input while idle.
func (g *Game) handleInput(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}

	if in.Has(platformcore.ActionBack) {
		g.selected = nil
	}

	if in.Has(platformcore.ActionConfirm) {
		g.confirm()
		return
	}

	dir, ok := directionOf(in)
	if !ok {
		return
	}

	if g.selected != nil {
		g.trySwap(g.selected, dir)
		return
	}

	size := g.grid.Size()
	next := g.cursor.Step(dir)
	g.cursor = core.Position{
		Row: platformcore.Clamp(next.Row, 0, size-1),
		Col: platformcore.Clamp(next.Col, 0, size-1),
	}
}

// confirm selects the token under the cursor, or swaps it with the
// selected neighbour.
func (g *Game) confirm() {
	tok := g.grid.TokenAt(g.cursor.Row, g.cursor.Col)
	switch {
	case tok == nil:
		return
	case g.selected == tok:
		g.selected = nil
	case g.selected != nil:
		if dir, ok := neighbourDirection(g.selected, g.cursor); ok {
			g.trySwap(g.selected, dir)
			return
		}
		g.selected = tok
	default:
		g.selected = tok
	}
}

// trySwap starts a move if swapping t in direction d is legal.
func (g *Game) trySwap(t *core.Token, d core.Direction) bool {
	g.selected = nil

	g.enter(StageSwapping)
	if !g.rules.ApplyMove(t, d) {
		g.enter(StageIdle)
		g.flash("No match")
		return false
	}

	g.moves++
	g.clearHint()
	if pos, ok := t.Location(); ok {
		g.cursor = pos
	}
	g.logger.Debug("swap", "token", t.GoString(), "dir", d, "moves", g.moves)
	return true
}

// stepAuto plays a random legal move every AutoMoveTicks idle ticks.
func (g *Game) stepAuto() {
	g.autoTicks++
	if g.autoTicks < g.timing.AutoMoveTicks {
		return
	}
	g.autoTicks = 0

	g.enter(StageSwapping)
	m, ok := g.rules.AutoMove()
	if !ok {
		g.enter(StageIdle)
		g.endGame()
		return
	}

	g.moves++
	if pos, ok := m.Token.Location(); ok {
		g.cursor = pos
	}
}

func (g *Game) showHint() {
	if !g.hints {
		g.flash("Hints are off")
		return
	}
	m, ok := g.rules.RandomLegalMove()
	if !ok {
		return
	}
	g.hint = m
	g.hintTicks = g.timing.HintTicks
}

func (g *Game) clearHint() {
	g.hint = core.Move{}
	g.hintTicks = 0
}

// advance moves the resolution stages along by one tick.
func (g *Game) advance() {
	g.stageTicks++
	for i := 0; g.stage != StageIdle && g.stageTicks >= g.stageDuration(g.stage); i++ {
		if i >= maxChain {
			g.logger.Warn("move never settled", "stage", g.stage, "chain", g.chain)
			return
		}
		g.nextStage()
	}
}

func (g *Game) nextStage() {
	switch g.stage {
	case StageSwapping, StageCollapsing:
		g.resolve()
	case StageCrushing:
		g.rules.CrushGroups(g.pending)
		g.pending = nil
		g.enter(StageCollapsing)
		g.rules.Collapse()
	}
}

// resolve looks for crush groups and either starts crushing them or
// returns to idle.
func (g *Game) resolve() {
	groups := g.rules.FindCrushGroups()
	if len(groups) == 0 {
		g.enter(StageIdle)
		g.chain = 0
		g.checkGameOver()
		return
	}

	g.chain++
	if g.chain > g.bestChain {
		g.bestChain = g.chain
	}
	if g.chain > 1 {
		g.flash(chainMessage(g.chain))
	}
	g.pending = groups
	g.enter(StageCrushing)
}

func (g *Game) enter(s Stage) {
	g.stage = s
	g.stageTicks = 0
	g.motions = make(map[*core.Token]motion)
}

func (g *Game) stageDuration(s Stage) int {
	switch s {
	case StageSwapping:
		return g.timing.SwapTicks
	case StageCrushing:
		return g.timing.CrushTicks
	case StageCollapsing:
		return g.timing.CollapseTicks
	default:
		return 0
	}
}

// stageProgress returns how far through the current stage we are, 0..1.
func (g *Game) stageProgress() float64 {
	d := g.stageDuration(g.stage)
	if d <= 0 || g.stageTicks >= d {
		return 1
	}
	return float64(g.stageTicks) / float64(d)
}

func (g *Game) checkGameOver() {
	if !g.rules.HasLegalMove() {
		g.endGame()
	}
}

func (g *Game) endGame() {
	g.gameOver = true
	g.selected = nil
	g.clearHint()
	g.logger.Info("game over", "mode", g.mode, "score", g.grid.Score(), "moves", g.moves)
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = 45
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	score := 0
	if g.grid != nil {
		score = g.grid.Score()
	}
	return platformcore.GameState{
		Score:    score,
		Moves:    g.moves,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Busy:     g.stage != StageIdle,
	}
}

// Rules returns the engine driving this game.
func (g *Game) Rules() *core.Rules {
	return g.rules
}

// Stage returns the current resolution stage.
func (g *Game) Stage() Stage {
	return g.stage
}

func directionOf(in platformcore.InputFrame) (core.Direction, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return core.DirUp, false
}

// neighbourDirection returns the direction from t to an adjacent cell.
func neighbourDirection(t *core.Token, to core.Position) (core.Direction, bool) {
	from, ok := t.Location()
	if !ok {
		return core.DirUp, false
	}
	for _, d := range core.Directions() {
		if from.Step(d) == to {
			return d, true
		}
	}
	return core.DirUp, false
}

func chainMessage(chain int) string {
	switch {
	case chain >= 5:
		return "Sweet!"
	case chain >= 4:
		return "Delicious!"
	case chain >= 3:
		return "Tasty!"
	default:
		return "Combo!"
	}
}
