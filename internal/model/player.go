package model

// Color identifies a side of the board
type Color string

const (
	ColorBlack Color = "black"
	ColorWhite Color = "white"
)

// Opponent returns the other side
func (c Color) Opponent() Color {
	if c == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// Valid reports whether the color is one of the two playable sides
func (c Color) Valid() bool {
	return c == ColorBlack || c == ColorWhite
}

// Player represents a participant seated in one game session.
// Immutable once created; uniqueness is per (login, session).
type Player struct {
	Login string
	Color Color
}
