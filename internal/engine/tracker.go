package engine

import (
	"fmt"

	"github.com/MiracleBell/java-go-game/internal/model"
)

const (
	// DefaultBoardSize is the standard full-size board
	DefaultBoardSize = 19

	// DefaultKomi is the compensation added to white's score
	DefaultKomi = 6.5
)

// Tracker is a minimal Engine that tracks stone placements on a board.
// It enforces bounds and occupancy; capture and life-and-death rules
// are intentionally not implemented here and belong to a full rules
// engine plugged in behind the Engine interface.
type Tracker struct {
	board model.Board
	komi  float64
}

var _ Engine = (*Tracker)(nil)

// NewTracker creates a tracking engine for an empty board of the given
// size. Sizes below 2 fall back to DefaultBoardSize.
func NewTracker(size int) *Tracker {
	if size < 2 {
		size = DefaultBoardSize
	}
	return &Tracker{
		board: model.NewBoard(size),
		komi:  DefaultKomi,
	}
}

// NewDefaultFactory returns a Factory producing trackers of the given size
func NewDefaultFactory(size int) Factory {
	return func() Engine {
		return NewTracker(size)
	}
}

// Turn places a stone for the given side
func (t *Tracker) Turn(color model.Color, move model.Move) (model.Board, error) {
	if !t.board.Contains(move) {
		return model.Board{}, fmt.Errorf("%w: point (%d,%d) is off the board", model.ErrMoveIllegal, move.Row, move.Col)
	}
	if t.board.Points[move.Row][move.Col] != "" {
		return model.Board{}, fmt.Errorf("%w: point (%d,%d) is occupied", model.ErrMoveIllegal, move.Row, move.Col)
	}

	t.board.Points[move.Row][move.Col] = color
	return t.board.Clone(), nil
}

// Pass records a passed turn; the board is unchanged
func (t *Tracker) Pass(color model.Color) (model.Board, error) {
	return t.board.Clone(), nil
}

// Score counts stones per side, with komi added to white
func (t *Tracker) Score() model.Score {
	var score model.Score
	for _, row := range t.board.Points {
		for _, point := range row {
			switch point {
			case model.ColorBlack:
				score.Black++
			case model.ColorWhite:
				score.White++
			}
		}
	}
	score.White += t.komi
	return score
}
