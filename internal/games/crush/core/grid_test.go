package core_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-crush/internal/games/crush/core"
)

func TestNewGridEmpty(t *testing.T) {
	g := core.NewGrid(4)

	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 0, g.Count())
	assert.Equal(t, 16, g.EmptyCount())
	assert.Equal(t, 0, g.Score())
	assert.Empty(t, g.AllTokens())
}

func TestIsValidLocation(t *testing.T) {
	g := core.NewGrid(3)

	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{2, 2, true},
		{1, 2, true},
		{3, 0, false},
		{0, 3, false},
		{-1, 0, false},
		{0, -1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, g.IsValidLocation(tt.row, tt.col), "(%d,%d)", tt.row, tt.col)
	}
}

func TestInvalidLocationReadsEmpty(t *testing.T) {
	g := core.NewGrid(3)

	assert.Nil(t, g.TokenAt(3, 3))
	assert.True(t, g.IsEmptyLocation(3, 3))
	assert.True(t, g.IsEmptyLocation(-1, 0))
}

func TestPlaceKeepsLocationInSync(t *testing.T) {
	g := core.NewGrid(3)
	rec := core.NewRecorder(g)
	defer rec.Close()

	tok := g.AddToken(core.ColorBlue, 1, 2)
	require.NotNil(t, tok)

	pos, ok := tok.Location()
	require.True(t, ok)
	assert.Equal(t, core.Position{Row: 1, Col: 2}, pos)
	assert.Same(t, tok, g.TokenAt(1, 2))
	assert.False(t, g.IsEmptyLocation(1, 2))

	require.Equal(t, 1, rec.Len())
	add, ok := rec.Events()[0].(core.AddEvent)
	require.True(t, ok)
	assert.Same(t, tok, add.Token)
	assert.Equal(t, 1, add.ToRow)
	assert.Equal(t, 2, add.ToCol)
	assert.False(t, add.HasSpawn)
}

func TestPlaceRefusals(t *testing.T) {
	var buf bytes.Buffer
	g := core.NewGrid(3, core.WithLogger(log.New(&buf)))
	rec := core.NewRecorder(g)
	defer rec.Close()

	first := g.AddToken(core.ColorRed, 0, 0)
	require.NotNil(t, first)
	rec.Drain()

	// Occupied
	assert.Nil(t, g.AddToken(core.ColorGreen, 0, 0))
	// Out of bounds
	assert.Nil(t, g.AddToken(core.ColorGreen, 3, 0))
	// Already placed
	assert.False(t, g.Place(first, 1, 1))
	// Nil
	assert.False(t, g.Place(nil, 1, 1))

	assert.Equal(t, 0, rec.Len(), "refused placements must not emit")
	assert.Equal(t, 1, g.Count())
	assert.Contains(t, buf.String(), "location occupied")
	assert.Contains(t, buf.String(), "invalid location")
}

func TestMoveTo(t *testing.T) {
	g := core.NewGrid(3)
	tok := g.AddToken(core.ColorYellow, 0, 1)
	blocker := g.AddToken(core.ColorPurple, 2, 1)
	rec := core.NewRecorder(g)
	defer rec.Close()

	assert.False(t, g.MoveTo(tok, 2, 1), "occupied target")
	assert.False(t, g.MoveTo(tok, 5, 1), "invalid target")
	assert.Equal(t, 0, rec.Len())

	require.True(t, g.MoveTo(tok, 1, 1))
	assert.Nil(t, g.TokenAt(0, 1))
	assert.Same(t, tok, g.TokenAt(1, 1))
	assert.Same(t, blocker, g.TokenAt(2, 1))

	require.Equal(t, 1, rec.Len())
	assert.Equal(t, core.MoveEvent{Token: tok, ToRow: 1, ToCol: 1, FromRow: 0, FromCol: 1}, rec.Events()[0])
}

func TestRemove(t *testing.T) {
	g := core.NewGrid(3)
	tok := g.AddToken(core.ColorOrange, 2, 0)
	rec := core.NewRecorder(g)
	defer rec.Close()

	require.True(t, g.Remove(tok))
	assert.False(t, tok.Placed())
	assert.True(t, g.IsEmptyLocation(2, 0))
	assert.Equal(t, []core.Event{core.RemoveEvent{Token: tok, FromRow: 2, FromCol: 0}}, rec.Events())

	assert.False(t, g.Remove(tok), "already removed")
	assert.False(t, g.RemoveAt(2, 0), "empty cell")
	assert.Equal(t, 1, rec.Len())

	// A removed token may be placed again.
	assert.True(t, g.Place(tok, 0, 0))
}

func TestSwapWritesBothCellsBeforeEvents(t *testing.T) {
	g := core.NewGrid(3)
	a := g.AddToken(core.ColorRed, 0, 0)
	b := g.AddToken(core.ColorBlue, 0, 1)

	var seen []string
	unsubscribe := g.Subscribe(func(e core.Event) {
		// Both cells must already hold their new tokens when either event fires.
		seen = append(seen, g.TokenAt(0, 0).String()+","+g.TokenAt(0, 1).String())
	})
	defer unsubscribe()

	rec := core.NewRecorder(g)
	defer rec.Close()

	require.True(t, g.Swap(a, b))

	assert.Equal(t, []string{"blue,red", "blue,red"}, seen)
	assert.Equal(t, []core.Event{
		core.MoveEvent{Token: a, ToRow: 0, ToCol: 1, FromRow: 0, FromCol: 0},
		core.MoveEvent{Token: b, ToRow: 0, ToCol: 0, FromRow: 0, FromCol: 1},
	}, rec.Events())

	posA, _ := a.Location()
	posB, _ := b.Location()
	assert.Equal(t, core.Position{Row: 0, Col: 1}, posA)
	assert.Equal(t, core.Position{Row: 0, Col: 0}, posB)
}

func TestSwapRefusesOffGridTokens(t *testing.T) {
	g := core.NewGrid(3)
	a := g.AddToken(core.ColorRed, 0, 0)
	loose := g.NewToken(core.ColorGreen)

	assert.False(t, g.Swap(a, loose))
	assert.False(t, g.Swap(a, a))
	assert.Same(t, a, g.TokenAt(0, 0))
}

func TestScore(t *testing.T) {
	g := core.NewGrid(3)
	tok := g.AddToken(core.ColorGreen, 1, 1)
	rec := core.NewRecorder(g)
	defer rec.Close()

	g.AddScore(tok, 1, 1)
	g.AddScore(tok, 1, 1)
	assert.Equal(t, 2, g.Score())

	g.ResetScore()
	assert.Equal(t, 0, g.Score())

	assert.Equal(t, []core.Event{
		core.ScoreEvent{Score: 1, Token: tok, Row: 1, Col: 1},
		core.ScoreEvent{Score: 2, Token: tok, Row: 1, Col: 1},
		core.ScoreEvent{Score: 0},
	}, rec.Events())
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	g := core.NewGrid(2)

	var first, second int
	stopFirst := g.Subscribe(func(core.Event) { first++ })
	stopSecond := g.Subscribe(func(core.Event) { second++ })

	g.AddToken(core.ColorRed, 0, 0)
	stopFirst()
	g.AddToken(core.ColorRed, 0, 1)
	stopSecond()
	g.AddToken(core.ColorRed, 1, 0)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestClearEmitsRemovePerToken(t *testing.T) {
	g := core.NewGrid(2)
	g.AddToken(core.ColorRed, 0, 0)
	g.AddToken(core.ColorBlue, 1, 1)
	rec := core.NewRecorder(g)
	defer rec.Close()

	g.Clear()

	assert.Equal(t, 0, g.Count())
	require.Equal(t, 2, rec.Len())
	for _, e := range rec.Events() {
		assert.IsType(t, core.RemoveEvent{}, e)
	}
}

func TestTokenInDirection(t *testing.T) {
	g := core.NewGrid(3)
	center := g.AddToken(core.ColorRed, 1, 1)
	up := g.AddToken(core.ColorBlue, 0, 1)
	right := g.AddToken(core.ColorGreen, 1, 2)

	assert.Same(t, up, g.TokenInDirection(center, core.DirUp))
	assert.Same(t, right, g.TokenInDirection(center, core.DirRight))
	assert.Nil(t, g.TokenInDirection(center, core.DirDown))
	assert.Nil(t, g.TokenInDirection(up, core.DirUp), "off the board")
}

func TestGridString(t *testing.T) {
	g := core.NewGrid(2)
	g.AddToken(core.ColorRed, 0, 0)
	g.AddToken(core.ColorPurple, 1, 1)

	assert.Equal(t, "r _\n_ p\n", g.String())
	assert.Equal(t, []string{"r.", ".p"}, g.Rows())
}

func TestTokenIdentity(t *testing.T) {
	g := core.NewGrid(2)
	a := g.AddToken(core.ColorRed, 0, 0)
	b := g.AddToken(core.ColorRed, 0, 1)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Color(), b.Color())
	assert.Equal(t, "Token#0(red@0,0)", a.GoString())
}
