package core

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Grid is a square board of token slots. It exclusively owns placement:
// a placed token's location always mirrors the cell that holds it.
//
// Mutators never panic on misuse. A refused call logs a warning, leaves the
// grid untouched and returns false.
type Grid struct {
	size   int
	cells  [][]*Token
	score  int
	nextID int

	subs    []subscription
	nextSub int

	logger *log.Logger
}

// GridOption configures a Grid.
type GridOption func(*Grid)

// WithLogger routes precondition warnings to logger.
func WithLogger(logger *log.Logger) GridOption {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGrid creates an empty size x size grid.
func NewGrid(size int, opts ...GridOption) *Grid {
	if size < 0 {
		size = 0
	}

	g := &Grid{
		size:   size,
		cells:  make([][]*Token, size),
		logger: log.New(io.Discard),
	}
	for r := range g.cells {
		g.cells[r] = make([]*Token, size)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size returns the number of cells on each side of the board.
func (g *Grid) Size() int {
	return g.size
}

// Logger returns the grid's logger.
func (g *Grid) Logger() *log.Logger {
	return g.logger
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously in registration order.
func (g *Grid) Subscribe(fn Listener) (unsubscribe func()) {
	id := g.nextSub
	g.nextSub++
	g.subs = append(g.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range g.subs {
			if s.id == id {
				g.subs = append(g.subs[:i], g.subs[i+1:]...)
				return
			}
		}
	}
}

func (g *Grid) emit(e Event) {
	// Copy so a listener may unsubscribe while being notified.
	subs := append([]subscription(nil), g.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}

// IsValidLocation reports whether (row, col) is a cell on this board.
func (g *Grid) IsValidLocation(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// IsEmptyLocation reports whether (row, col) holds no token.
// Invalid locations count as empty; use IsValidLocation for bounds.
func (g *Grid) IsEmptyLocation(row, col int) bool {
	return g.TokenAt(row, col) == nil
}

// TokenAt returns the token at (row, col), or nil if empty or invalid.
func (g *Grid) TokenAt(row, col int) *Token {
	if !g.IsValidLocation(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// LocationOf returns the cell of t, or false if t is not on this grid.
func (g *Grid) LocationOf(t *Token) (Position, bool) {
	if !g.contains(t) {
		return Position{}, false
	}
	return t.Location()
}

// TokenInDirection returns the neighbour of t in direction d, or nil.
func (g *Grid) TokenInDirection(t *Token, d Direction) *Token {
	pos, ok := g.LocationOf(t)
	if !ok {
		return nil
	}
	next := pos.Step(d)
	return g.TokenAt(next.Row, next.Col)
}

// AllTokens returns every placed token, in row-major order.
func (g *Grid) AllTokens() []*Token {
	tokens := make([]*Token, 0, g.size*g.size)
	for r := range g.cells {
		for _, t := range g.cells[r] {
			if t != nil {
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}

// Count returns the number of placed tokens.
func (g *Grid) Count() int {
	n := 0
	for r := range g.cells {
		for _, t := range g.cells[r] {
			if t != nil {
				n++
			}
		}
	}
	return n
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	return g.size*g.size - g.Count()
}

// NewToken creates an unplaced token with a fresh identity.
func (g *Grid) NewToken(c Color) *Token {
	t := &Token{color: c, id: g.nextID}
	g.nextID++
	return t
}

// AddToken creates a token of color c and places it at (row, col).
// Returns nil if the placement was refused.
func (g *Grid) AddToken(c Color, row, col int) *Token {
	t := g.NewToken(c)
	if !g.Place(t, row, col) {
		return nil
	}
	return t
}

// AddTokenSpawned is AddToken with an off-board spawn point for the add event.
func (g *Grid) AddTokenSpawned(c Color, row, col, spawnRow, spawnCol int) *Token {
	t := g.NewToken(c)
	if !g.PlaceSpawned(t, row, col, spawnRow, spawnCol) {
		return nil
	}
	return t
}

// Place puts an unplaced token on the empty cell (row, col).
func (g *Grid) Place(t *Token, row, col int) bool {
	return g.place(t, row, col, Position{}, false)
}

// PlaceSpawned is Place with a spawn point reported in the AddEvent.
// The spawn point may lie outside the board.
func (g *Grid) PlaceSpawned(t *Token, row, col, spawnRow, spawnCol int) bool {
	return g.place(t, row, col, Position{Row: spawnRow, Col: spawnCol}, true)
}

func (g *Grid) place(t *Token, row, col int, spawn Position, hasSpawn bool) bool {
	switch {
	case t == nil:
		g.logger.Warn("place: nil token", "row", row, "col", col)
		return false
	case t.placed:
		g.logger.Warn("place: token already on a grid", "token", t.GoString())
		return false
	case !g.IsValidLocation(row, col):
		g.logger.Warn("place: invalid location", "row", row, "col", col)
		return false
	case g.cells[row][col] != nil:
		g.logger.Warn("place: location occupied", "row", row, "col", col)
		return false
	}

	t.setLocation(row, col)
	g.cells[row][col] = t

	g.emit(AddEvent{
		Token:    t,
		ToRow:    row,
		ToCol:    col,
		Spawn:    spawn,
		HasSpawn: hasSpawn,
	})
	return true
}

// MoveTo moves a placed token to the empty cell (toRow, toCol).
func (g *Grid) MoveTo(t *Token, toRow, toCol int) bool {
	if !g.contains(t) {
		g.logger.Warn("moveTo: token not on grid", "token", tokenName(t))
		return false
	}
	if !g.IsValidLocation(toRow, toCol) || g.cells[toRow][toCol] != nil {
		g.logger.Warn("moveTo: target not an empty cell", "row", toRow, "col", toCol)
		return false
	}

	fromRow, fromCol := t.row, t.col
	g.cells[fromRow][fromCol] = nil
	g.cells[toRow][toCol] = t
	t.setLocation(toRow, toCol)

	g.emit(MoveEvent{
		Token:   t,
		ToRow:   toRow,
		ToCol:   toCol,
		FromRow: fromRow,
		FromCol: fromCol,
	})
	return true
}

// Remove takes a placed token off the grid.
func (g *Grid) Remove(t *Token) bool {
	if !g.contains(t) {
		g.logger.Warn("remove: token not on grid", "token", tokenName(t))
		return false
	}

	fromRow, fromCol := t.row, t.col
	g.cells[fromRow][fromCol] = nil
	t.clearLocation()

	g.emit(RemoveEvent{Token: t, FromRow: fromRow, FromCol: fromCol})
	return true
}

// RemoveAt removes whatever token occupies (row, col).
func (g *Grid) RemoveAt(row, col int) bool {
	t := g.TokenAt(row, col)
	if t == nil {
		g.logger.Warn("removeAt: no token", "row", row, "col", col)
		return false
	}
	return g.Remove(t)
}

// Clear removes every token, one RemoveEvent each.
func (g *Grid) Clear() {
	for _, t := range g.AllTokens() {
		g.Remove(t)
	}
}

// Swap exchanges the cells of two placed tokens. Both cells are written
// before either MoveEvent fires. Legality is the caller's concern.
func (g *Grid) Swap(a, b *Token) bool {
	if !g.contains(a) || !g.contains(b) {
		g.logger.Warn("swap: token not on grid", "a", tokenName(a), "b", tokenName(b))
		return false
	}
	if a == b {
		return false
	}

	moveA := MoveEvent{Token: a, ToRow: b.row, ToCol: b.col, FromRow: a.row, FromCol: a.col}
	moveB := MoveEvent{Token: b, ToRow: a.row, ToCol: a.col, FromRow: b.row, FromCol: b.col}

	a.setLocation(moveA.ToRow, moveA.ToCol)
	g.cells[moveA.ToRow][moveA.ToCol] = a
	b.setLocation(moveB.ToRow, moveB.ToCol)
	g.cells[moveB.ToRow][moveB.ToCol] = b

	g.emit(moveA)
	g.emit(moveB)
	return true
}

// ResetScore sets the score to zero.
func (g *Grid) ResetScore() {
	g.score = 0
	g.emit(ScoreEvent{Score: 0})
}

// AddScore adds one point for token t crushed at (row, col).
func (g *Grid) AddScore(t *Token, row, col int) {
	g.score++
	g.emit(ScoreEvent{Score: g.score, Token: t, Row: row, Col: col})
}

// Score returns the current score.
func (g *Grid) Score() int {
	return g.score
}

// String renders the board one row per line, using color codes and '_' for empty cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if t := g.cells[r][c]; t != nil {
				sb.WriteRune(t.color.Code())
			} else {
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rows returns the board as board-spec rows, with '.' for empty cells.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	buf := make([]rune, g.size)
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if t := g.cells[r][c]; t != nil {
				buf[c] = t.color.Code()
			} else {
				buf[c] = '.'
			}
		}
		rows[r] = string(buf)
	}
	return rows
}

// contains reports whether t is placed on this grid.
func (g *Grid) contains(t *Token) bool {
	if t == nil || !t.placed || !g.IsValidLocation(t.row, t.col) {
		return false
	}
	return g.cells[t.row][t.col] == t
}

func tokenName(t *Token) string {
	if t == nil {
		return "<nil>"
	}
	return t.GoString()
}
