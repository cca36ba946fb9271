// Package session implements the game-session lifecycle: the per-game
// state machine and the process-wide registry resolving tokens to the
// sessions their players belong to.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/MiracleBell/java-go-game/internal/dependencies/clock"
	"github.com/MiracleBell/java-go-game/internal/engine"
	"github.com/MiracleBell/java-go-game/internal/model"
)

// State represents the current phase of a session
type State string

const (
	StateWaiting    State = "waiting"     // One player present, waiting for an opponent
	StateInProgress State = "in_progress" // Two players present, turns being taken
	StateFinished   State = "finished"    // Terminal
)

// passesToFinish is the number of consecutive passes that ends the game
const passesToFinish = 2

// Outcome is the result of a successful Turn or Pass. When Finished is
// set the session transitioned to StateFinished as a side effect of the
// action and Score carries the final result; callers should respond
// with a finish result instead of the board.
type Outcome struct {
	Board    model.Board
	Finished bool
	Score    model.Score
}

// Session is one game instance from creation to finish.
//
// A session serializes its own mutations: state, seating, turn order,
// the consecutive-pass counter and the score cache are guarded by one
// mutex, so the registry's map-level safety never has to protect
// session internals. Engine calls happen under the mutex; engines are
// in-memory and non-blocking by contract.
type Session struct {
	id     string
	engine engine.Engine
	clock  clock.Clock

	mu         sync.Mutex
	state      State
	players    [2]model.Player // seat 0 is the creator
	seated     int
	current    model.Color // side expected to move next
	passes     int         // consecutive passes
	score      *model.Score
	createdAt  time.Time
	finishedAt time.Time
}

// New creates a session in StateWaiting holding exactly the creator
func New(id string, creator model.Player, eng engine.Engine, clk clock.Clock) *Session {
	s := &Session{
		id:        id,
		engine:    eng,
		clock:     clk,
		state:     StateWaiting,
		seated:    1,
		createdAt: clk.Now(),
	}
	s.players[0] = creator
	return s
}

// ID returns the session's unique identifier
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Players returns a snapshot of the seated players
func (s *Session) Players() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Player, s.seated)
	copy(out, s.players[:s.seated])
	return out
}

// CreatedAt returns the session creation time
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Join seats a second player and starts the game. The joiner is
// assigned the color the creator did not take; black moves first.
func (s *Session) Join(login string) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateFinished:
		return model.Player{}, model.ErrGameFinished
	case StateInProgress:
		return model.Player{}, model.ErrGameFull
	}
	if login == s.players[0].Login {
		return model.Player{}, model.ErrSelfJoin
	}

	joiner := model.Player{Login: login, Color: s.players[0].Color.Opponent()}
	s.players[1] = joiner
	s.seated = 2
	s.state = StateInProgress
	s.current = model.ColorBlack
	s.passes = 0
	return joiner, nil
}

// Turn applies a move for the given player. Engine legality failures
// are propagated unchanged and leave turn order and the pass counter
// untouched. If the engine signals a terminal board the session
// finalizes and the outcome reports the game as finished.
func (s *Session) Turn(player model.Player, move model.Move) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, err := s.checkActLocked(player.Login)
	if err != nil {
		return Outcome{}, err
	}

	board, err := s.engine.Turn(color, move)
	if err != nil {
		if errors.Is(err, engine.ErrGameOver) {
			return s.finalizeLocked(board), nil
		}
		return Outcome{}, err
	}

	s.passes = 0
	s.current = s.current.Opponent()
	return Outcome{Board: board}, nil
}

// Pass records a passed turn for the given player. The second
// consecutive pass finishes the game; this is the sole automatic
// end-of-game trigger besides an engine-reported terminal board.
func (s *Session) Pass(player model.Player) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, err := s.checkActLocked(player.Login)
	if err != nil {
		return Outcome{}, err
	}

	board, err := s.engine.Pass(color)
	if err != nil {
		if errors.Is(err, engine.ErrGameOver) {
			return s.finalizeLocked(board), nil
		}
		return Outcome{}, err
	}

	s.passes++
	if s.passes >= passesToFinish {
		return s.finalizeLocked(board), nil
	}

	s.current = s.current.Opponent()
	return Outcome{Board: board}, nil
}

// Finish forces the session into StateFinished and returns the final
// score. Used for surrender and explicit finish requests; idempotent.
func (s *Session) Finish() model.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalizeLocked(model.Board{}).Score
}

// Score returns the cached final score. Fails with ErrGameNotFinished
// until the session is terminal.
func (s *Session) Score() (model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFinished || s.score == nil {
		return model.Score{}, model.ErrGameNotFinished
	}
	return *s.score, nil
}

// checkActLocked validates state, membership and turn order for an
// in-game action, returning the acting seat's color. Rejections leave
// the session untouched.
func (s *Session) checkActLocked(login string) (model.Color, error) {
	switch s.state {
	case StateFinished:
		return "", model.ErrGameFinished
	case StateWaiting:
		return "", model.ErrGameNotStarted
	}

	var color model.Color
	seated := false
	for i := 0; i < s.seated; i++ {
		if s.players[i].Login == login {
			color = s.players[i].Color
			seated = true
			break
		}
	}
	if !seated {
		return "", model.ErrNotParticipant
	}
	if color != s.current {
		return "", model.ErrNotYourTurn
	}
	return color, nil
}

// finalizeLocked transitions to StateFinished exactly once, computing
// and caching the score on the first call.
func (s *Session) finalizeLocked(board model.Board) Outcome {
	if s.state != StateFinished {
		score := s.engine.Score()
		s.score = &score
		s.state = StateFinished
		s.finishedAt = s.clock.Now()
	}
	return Outcome{Board: board, Finished: true, Score: *s.score}
}
