package core

import "fmt"

// Token is a colored game piece. Color and ID are fixed at creation; the
// position is owned by the Grid and mirrors the token's cell.
type Token struct {
	color  Color
	id     int
	row    int
	col    int
	placed bool
}

// Color returns the token color.
func (t *Token) Color() Color {
	return t.color
}

// ID returns the token's unique identifier.
func (t *Token) ID() int {
	return t.id
}

// Location returns the token's cell, or false if it is not on a grid.
func (t *Token) Location() (Position, bool) {
	if !t.placed {
		return Position{}, false
	}
	return Position{Row: t.row, Col: t.col}, true
}

// Placed reports whether the token currently occupies a cell.
func (t *Token) Placed() bool {
	return t.placed
}

// String returns the color name.
func (t *Token) String() string {
	return t.color.String()
}

// GoString includes the identity, which is what tells two same-colored tokens apart.
func (t *Token) GoString() string {
	if !t.placed {
		return fmt.Sprintf("Token#%d(%s)", t.id, t.color)
	}
	return fmt.Sprintf("Token#%d(%s@%d,%d)", t.id, t.color, t.row, t.col)
}

func (t *Token) setLocation(row, col int) {
	t.row = row
	t.col = col
	t.placed = true
}

func (t *Token) clearLocation() {
	t.row = 0
	t.col = 0
	t.placed = false
}
