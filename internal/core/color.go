package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. The first group matches the candy palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorGreen
	ColorOrange
	ColorBlue
	ColorPurple
	ColorWhite
	ColorBrightWhite
	ColorBrightYellow
	ColorGray
)

// Attr is a text attribute applied on top of a cell's color.
type Attr uint8

const (
	AttrBold    Attr = 1 << iota // Highlighted text
	AttrReverse                  // Swapped foreground/background, used for the cursor

	AttrNone Attr = 0
)

// Has reports whether all bits of other are set.
func (a Attr) Has(other Attr) bool {
	return a&other == other
}
