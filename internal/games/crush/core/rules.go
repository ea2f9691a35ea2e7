package core

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-crush/internal/dsu"
)

// MinRun is the shortest same-color run that crushes.
const MinRun = 3

// maxSettleRounds bounds Settle; a random refill cascading this long is a bug.
const maxSettleRounds = 1000

// Board spec errors.
var (
	ErrBoardSpecSize  = errors.New("board spec must be size x size")
	ErrBoardSpecColor = errors.New("board spec has an unknown color code")
)

// Source is the random source the rules draw colors and moves from.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Phase is the engine-level game state.
type Phase int

const (
	PhaseSetup   Phase = iota // Seeding the board, scoring disabled
	PhasePlaying              // Scoring enabled
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Rules implements match-3 rules on top of a Grid. It reads and writes the
// grid directly and emits nothing itself; all events come from the grid.
type Rules struct {
	grid  *Grid
	rng   Source
	phase Phase
}

// NewRules binds the rules to grid. A nil rng falls back to a source seeded with 0,
// so an unseeded game still opens on the same board every run.
func NewRules(grid *Grid, rng Source) *Rules {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return &Rules{
		grid:  grid,
		rng:   rng,
		phase: PhaseSetup,
	}
}

// Grid returns the grid the rules operate on.
func (r *Rules) Grid() *Grid {
	return r.grid
}

// Phase returns the current engine phase.
func (r *Rules) Phase() Phase {
	return r.phase
}

// NewGame clears the board, resets the score and seeds a board with no
// crushable runs. Crushes found while seeding are not scored.
func (r *Rules) NewGame() {
	r.phase = PhaseSetup
	r.grid.Clear()
	r.grid.ResetScore()

	for {
		r.Populate()
		groups := r.FindCrushGroups()
		if len(groups) == 0 {
			break
		}
		r.CrushGroups(groups)
	}

	r.phase = PhasePlaying
}

// NewGameFrom clears the board, resets the score and lays out a fixed board.
// Runs already on the board are left for the caller to resolve, and score once
// crushed. On error the board is left cleared.
func (r *Rules) NewGameFrom(spec []string) error {
	r.phase = PhaseSetup
	r.grid.Clear()
	r.grid.ResetScore()

	if err := r.LoadSpecifiedBoard(spec); err != nil {
		return err
	}

	r.phase = PhasePlaying
	return nil
}

// Populate fills every empty cell with a random color, column by column.
func (r *Rules) Populate() {
	n := r.grid.Size()
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			if r.grid.TokenAt(row, col) == nil {
				r.grid.AddToken(r.randomColor(), row, col)
			}
		}
	}
}

// LoadSpecifiedBoard fills empty cells from rows of color codes.
// The spec must have exactly Size rows of Size codes each; on any error
// the grid is left unchanged.
func (r *Rules) LoadSpecifiedBoard(spec []string) error {
	n := r.grid.Size()
	logger := r.grid.Logger()

	if len(spec) != n {
		logger.Warn("board spec has wrong row count", "rows", len(spec), "size", n)
		return fmt.Errorf("%w: got %d rows, want %d", ErrBoardSpecSize, len(spec), n)
	}

	colors := make([][]Color, n)
	for row, line := range spec {
		codes := []rune(line)
		if len(codes) != n {
			logger.Warn("board spec has wrong row length", "row", row, "length", len(codes), "size", n)
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardSpecSize, row, len(codes), n)
		}

		colors[row] = make([]Color, n)
		for col, code := range codes {
			c, ok := ParseColorCode(code)
			if !ok {
				logger.Warn("board spec has unknown color code", "row", row, "col", col, "code", string(code))
				return fmt.Errorf("%w: %q at (%d,%d)", ErrBoardSpecColor, code, row, col)
			}
			colors[row][col] = c
		}
	}

	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			if r.grid.TokenAt(row, col) == nil {
				r.grid.AddToken(colors[row][col], row, col)
			}
		}
	}
	return nil
}

// FindCrushGroups returns every group of connected same-color runs on the board.
// Groups come in row-major order of their first token, as do tokens within a group.
func (r *Rules) FindCrushGroups() []Group {
	return r.findCrushGroups(nil)
}

// FindCrushGroupsWithSwap is FindCrushGroups as if a and b had traded cells.
// The grid is not modified.
func (r *Rules) FindCrushGroupsWithSwap(a, b *Token) []Group {
	return r.findCrushGroups(&[2]*Token{a, b})
}

func (r *Rules) findCrushGroups(swap *[2]*Token) []Group {
	set := dsu.New[*Token]()

	strips := append(r.findStrips(true, swap), r.findStrips(false, swap)...)
	for _, strip := range strips {
		for _, t := range strip[1:] {
			set.Union(strip[0], t)
		}
	}

	var groups []Group
	index := make(map[*Token]int)
	n := r.grid.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			t := r.grid.TokenAt(row, col)
			if t == nil {
				continue
			}

			root := set.Find(t)
			if set.Size(root) < MinRun {
				continue
			}

			i, ok := index[root]
			if !ok {
				i = len(groups)
				index[root] = i
				groups = append(groups, nil)
			}
			groups[i] = append(groups[i], t)
		}
	}
	return groups
}

// findStrips returns every run of MinRun or more same-color tokens, either
// down columns (vertical) or along rows. With swap set, reading either
// swapped token yields the other.
func (r *Rules) findStrips(vertical bool, swap *[2]*Token) []Group {
	at := func(line, k int) *Token {
		var t *Token
		if vertical {
			t = r.grid.TokenAt(k, line)
		} else {
			t = r.grid.TokenAt(line, k)
		}
		if swap != nil && t != nil {
			switch t {
			case swap[0]:
				return swap[1]
			case swap[1]:
				return swap[0]
			}
		}
		return t
	}

	var strips []Group
	n := r.grid.Size()
	for line := 0; line < n; line++ {
		for k := 0; k < n; {
			first := at(line, k)
			h := k + 1
			if first == nil {
				k = h
				continue
			}

			run := Group{first}
			for ; h < n; h++ {
				next := at(line, h)
				if next == nil || next.color != first.color {
					break
				}
				run = append(run, next)
			}
			if len(run) >= MinRun {
				strips = append(strips, run)
			}
			k = h
		}
	}
	return strips
}

// CrushGroups removes every token in groups, scoring one point per token
// while playing. It does not compact the board. Returns the tokens removed.
func (r *Rules) CrushGroups(groups []Group) int {
	crushed := 0
	for _, g := range groups {
		for _, t := range g {
			pos, ok := r.grid.LocationOf(t)
			if !ok {
				continue
			}
			if r.phase == PhasePlaying {
				r.grid.AddScore(t, pos.Row, pos.Col)
			}
			if r.grid.Remove(t) {
				crushed++
			}
		}
	}
	return crushed
}

// Collapse lets tokens fall into the empty cells below them, column by
// column, then refills the top of each column. New tokens report spawn rows
// -1, -2, ... above the board. Returns the number of tokens spawned.
func (r *Rules) Collapse() int {
	spawned := 0
	n := r.grid.Size()
	for col := 0; col < n; col++ {
		// Lowest empty cell in the column
		emptyRow := n - 1
		for ; emptyRow >= 0; emptyRow-- {
			if r.grid.TokenAt(emptyRow, col) == nil {
				break
			}
		}

		for row := emptyRow - 1; row >= 0; row-- {
			if t := r.grid.TokenAt(row, col); t != nil {
				r.grid.MoveTo(t, emptyRow, col)
				emptyRow--
			}
		}

		for spawnRow := -1; emptyRow >= 0; emptyRow, spawnRow = emptyRow-1, spawnRow-1 {
			if r.grid.AddTokenSpawned(r.randomColor(), emptyRow, col, spawnRow, col) != nil {
				spawned++
			}
		}
	}
	return spawned
}

// Settle crushes and collapses until the board is stable and returns the
// number of rounds it took.
func (r *Rules) Settle() int {
	rounds := 0
	for ; rounds < maxSettleRounds; rounds++ {
		groups := r.FindCrushGroups()
		if len(groups) == 0 {
			return rounds
		}
		r.CrushGroups(groups)
		r.Collapse()
	}
	r.grid.Logger().Warn("settle: board never stabilised", "rounds", rounds)
	return rounds
}

// IsMoveLegal reports whether swapping t in direction d crushes anything
// touching the swapped pair.
func (r *Rules) IsMoveLegal(t *Token, d Direction) bool {
	return r.CandiesCrushedByMove(t, d) > 0
}

// CandiesCrushedByMove returns how many tokens swapping t in direction d would crush.
func (r *Rules) CandiesCrushedByMove(t *Token, d Direction) int {
	return len(r.TokensToCrushGivenMove(t, d))
}

// TokensToCrushGivenMove returns the tokens a swap of t in direction d would
// crush. Only groups containing one of the swapped pair count; runs elsewhere
// on an unresolved board are ignored.
func (r *Rules) TokensToCrushGivenMove(t *Token, d Direction) []*Token {
	if t == nil {
		return nil
	}
	other := r.grid.TokenInDirection(t, d)
	if other == nil || other.color == t.color {
		return nil
	}

	var tokens []*Token
	for _, g := range r.findCrushGroups(&[2]*Token{t, other}) {
		if g.Contains(t) || g.Contains(other) {
			tokens = append(tokens, g...)
		}
	}
	return tokens
}

// LegalMoves returns every legal move with its crush size, scanning cells
// row-major and directions up, down, left, right.
func (r *Rules) LegalMoves() []ScoredMove {
	var moves []ScoredMove
	n := r.grid.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			t := r.grid.TokenAt(row, col)
			if t == nil {
				continue
			}
			for _, d := range Directions() {
				if crushed := r.CandiesCrushedByMove(t, d); crushed > 0 {
					moves = append(moves, ScoredMove{
						Move:    Move{Token: t, Direction: d},
						Crushed: crushed,
					})
				}
			}
		}
	}
	return moves
}

// ScoredMove is a legal move with the number of tokens it crushes.
type ScoredMove struct {
	Move
	Crushed int
}

// HasLegalMove reports whether any swap on the board is legal.
func (r *Rules) HasLegalMove() bool {
	n := r.grid.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			t := r.grid.TokenAt(row, col)
			if t == nil {
				continue
			}
			for _, d := range Directions() {
				if r.IsMoveLegal(t, d) {
					return true
				}
			}
		}
	}
	return false
}

// RandomLegalMove picks a legal move at random, preferring moves that crush
// exactly three tokens over bigger ones. Returns false if none exist.
func (r *Rules) RandomLegalMove() (Move, bool) {
	var three, more []Move
	for _, m := range r.LegalMoves() {
		switch {
		case m.Crushed == MinRun:
			three = append(three, m.Move)
		case m.Crushed > MinRun:
			more = append(more, m.Move)
		}
	}

	candidates := three
	if len(candidates) == 0 {
		candidates = more
	}
	if len(candidates) == 0 {
		return Move{}, false
	}
	return candidates[r.rng.Intn(len(candidates))], true
}

// ApplyMove swaps t with its neighbour in direction d if the move is legal.
// It does not crush.
func (r *Rules) ApplyMove(t *Token, d Direction) bool {
	if !r.IsMoveLegal(t, d) {
		return false
	}
	return r.grid.Swap(t, r.grid.TokenInDirection(t, d))
}

// AutoMove performs a random legal swap without crushing.
func (r *Rules) AutoMove() (Move, bool) {
	m, ok := r.RandomLegalMove()
	if !ok {
		return Move{}, false
	}
	if !r.grid.Swap(m.Token, r.grid.TokenInDirection(m.Token, m.Direction)) {
		return Move{}, false
	}
	return m, true
}

func (r *Rules) randomColor() Color {
	return Color(r.rng.Intn(int(ColorCount)))
}
