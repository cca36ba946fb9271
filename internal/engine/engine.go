// Package engine defines the rule-engine seam consumed by game sessions.
// A session only ever asks an engine whether an action is legal and what
// the final score is; lifecycle decisions stay in the session itself.
package engine

import (
	"errors"

	"github.com/MiracleBell/java-go-game/internal/model"
)

// ErrGameOver is returned by Turn or Pass when the engine detects a
// terminal board condition. The session finalizes on it, so engines
// should return it at most once per game.
var ErrGameOver = errors.New("game over")

// Engine enforces move legality and produces the board and score for
// one game session. Implementations do not need to be safe for
// concurrent use; the owning session serializes all calls.
type Engine interface {
	// Turn applies a stone placement for the given side and returns the
	// updated board. Illegal moves fail with an error wrapping
	// model.ErrMoveIllegal and leave the board unchanged.
	Turn(color model.Color, move model.Move) (model.Board, error)

	// Pass records a passed turn for the given side and returns the
	// current board.
	Pass(color model.Color) (model.Board, error)

	// Score computes the result for the current board.
	Score() model.Score
}

// Factory produces a fresh engine for each new session
type Factory func() Engine
