package model

// Move is a single stone placement at a board intersection
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a snapshot of the game field.
// Empty intersections hold the zero Color.
type Board struct {
	Size   int       `json:"size"`
	Points [][]Color `json:"points"`
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) Board {
	points := make([][]Color, size)
	for i := range points {
		points[i] = make([]Color, size)
	}
	return Board{Size: size, Points: points}
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := NewBoard(b.Size)
	for i := range b.Points {
		copy(out.Points[i], b.Points[i])
	}
	return out
}

// Contains reports whether the move lies on the board
func (b Board) Contains(m Move) bool {
	return m.Row >= 0 && m.Row < b.Size && m.Col >= 0 && m.Col < b.Size
}

// Score is the final result of a finished session
type Score struct {
	Black float64 `json:"black"`
	White float64 `json:"white"`
}
