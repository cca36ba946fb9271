package mocks

import (
	"github.com/MiracleBell/java-go-game/internal/engine"
	"github.com/MiracleBell/java-go-game/internal/model"
)

// MockEngine is a scriptable implementation of engine.Engine for
// testing failure propagation and engine-triggered game end.
type MockEngine struct {
	// Board is returned from Turn and Pass on success
	Board model.Board
	// ScoreResult is returned from Score
	ScoreResult model.Score

	// errs is a queue of errors consumed by Turn/Pass calls; nil
	// entries mean success
	errs []error

	// Call counters
	TurnCalls  int
	PassCalls  int
	ScoreCalls int
}

// Ensure MockEngine implements Engine
var _ engine.Engine = (*MockEngine)(nil)

// NewMockEngine creates a MockEngine returning an empty 9x9 board
func NewMockEngine() *MockEngine {
	return &MockEngine{Board: model.NewBoard(9)}
}

// QueueError adds errors to be returned by upcoming Turn/Pass calls
func (e *MockEngine) QueueError(errs ...error) {
	e.errs = append(e.errs, errs...)
}

func (e *MockEngine) nextErr() error {
	if len(e.errs) == 0 {
		return nil
	}
	err := e.errs[0]
	e.errs = e.errs[1:]
	return err
}

// Turn returns the scripted board or the next queued error
func (e *MockEngine) Turn(color model.Color, move model.Move) (model.Board, error) {
	e.TurnCalls++
	if err := e.nextErr(); err != nil {
		return model.Board{}, err
	}
	return e.Board, nil
}

// Pass returns the scripted board or the next queued error
func (e *MockEngine) Pass(color model.Color) (model.Board, error) {
	e.PassCalls++
	if err := e.nextErr(); err != nil {
		return model.Board{}, err
	}
	return e.Board, nil
}

// Score returns the scripted score
func (e *MockEngine) Score() model.Score {
	e.ScoreCalls++
	return e.ScoreResult
}
