// Package core provides the match-3 rules engine for the Crush game.
// This package is UI-agnostic and deterministic given a seeded random source.
package core

import "fmt"

// Color is a token color from the fixed candy palette.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
	ColorOrange
	ColorBlue
	ColorPurple
	ColorCount // Sentinel value for iteration
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorOrange:
		return "orange"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Code returns the one-letter board-spec code for the color.
func (c Color) Code() rune {
	switch c {
	case ColorRed:
		return 'r'
	case ColorYellow:
		return 'y'
	case ColorGreen:
		return 'g'
	case ColorOrange:
		return 'o'
	case ColorBlue:
		return 'b'
	case ColorPurple:
		return 'p'
	default:
		return '?'
	}
}

// ParseColorCode decodes a one-letter board-spec code.
func ParseColorCode(r rune) (Color, bool) {
	switch r {
	case 'r', 'R':
		return ColorRed, true
	case 'y', 'Y':
		return ColorYellow, true
	case 'g', 'G':
		return ColorGreen, true
	case 'o', 'O':
		return ColorOrange, true
	case 'b', 'B':
		return ColorBlue, true
	case 'p', 'P':
		return ColorPurple, true
	default:
		return ColorRed, false
	}
}

// AllColors returns the palette in random-pick order.
func AllColors() []Color {
	return []Color{ColorRed, ColorYellow, ColorGreen, ColorOrange, ColorBlue, ColorPurple}
}

// Position is a (row, col) cell address. Row 0 is the top of the board.
type Position struct {
	Row int
	Col int
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the neighbouring position in the given direction.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Direction is one of the four swap directions.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions returns all directions in scan order.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the (row, col) offset of one step in this direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	default:
		return DirUp, false
	}
}

// Move is a candidate swap of Token with its neighbour in Direction.
type Move struct {
	Token     *Token
	Direction Direction
}

// String returns a string representation of the move.
func (m Move) String() string {
	if m.Token == nil {
		return "<no move>"
	}
	return fmt.Sprintf("%s %s", m.Token, m.Direction)
}

// Group is a set of connected same-color tokens removed together.
type Group []*Token

// Contains reports whether the group holds token t.
func (g Group) Contains(t *Token) bool {
	for _, member := range g {
		if member == t {
			return true
		}
	}
	return false
}
