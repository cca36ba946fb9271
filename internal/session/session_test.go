package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/MiracleBell/java-go-game/internal/dependencies/mocks"
	"github.com/MiracleBell/java-go-game/internal/engine"
	"github.com/MiracleBell/java-go-game/internal/model"
)

type SessionSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	engine *mocks.MockEngine
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.engine = mocks.NewMockEngine()
	s.engine.ScoreResult = model.Score{Black: 10, White: 16.5}
}

func (s *SessionSuite) newSession() *Session {
	creator := model.Player{Login: "alice", Color: model.ColorBlack}
	return New("s1", creator, s.engine, s.clock)
}

// startedSession returns a session with alice (black) and bob (white)
// already in progress
func (s *SessionSuite) startedSession() *Session {
	sess := s.newSession()
	_, err := sess.Join("bob")
	s.Require().NoError(err)
	return sess
}

// Creation and joining

func (s *SessionSuite) TestNewSessionIsWaiting() {
	sess := s.newSession()
	s.Equal(StateWaiting, sess.State())
	s.Len(sess.Players(), 1)
	s.Equal("alice", sess.Players()[0].Login)
}

func (s *SessionSuite) TestJoinStartsGame() {
	sess := s.newSession()

	joiner, err := sess.Join("bob")
	s.Require().NoError(err)
	s.Equal(model.ColorWhite, joiner.Color)
	s.Equal(StateInProgress, sess.State())
	s.Len(sess.Players(), 2)
}

func (s *SessionSuite) TestJoinerGetsCreatorsOppositeColor() {
	creator := model.Player{Login: "alice", Color: model.ColorWhite}
	sess := New("s1", creator, s.engine, s.clock)

	joiner, err := sess.Join("bob")
	s.Require().NoError(err)
	s.Equal(model.ColorBlack, joiner.Color)
}

func (s *SessionSuite) TestJoinFailsForCreatorLogin() {
	sess := s.newSession()
	_, err := sess.Join("alice")
	s.ErrorIs(err, model.ErrSelfJoin)
	s.Equal(StateWaiting, sess.State())
}

func (s *SessionSuite) TestJoinFailsWhenFull() {
	sess := s.startedSession()
	_, err := sess.Join("carol")
	s.ErrorIs(err, model.ErrGameFull)
}

func (s *SessionSuite) TestJoinFailsWhenFinished() {
	sess := s.startedSession()
	sess.Finish()
	_, err := sess.Join("carol")
	s.ErrorIs(err, model.ErrGameFinished)
}

// Turn order

func (s *SessionSuite) TestBlackMovesFirst() {
	sess := s.startedSession()

	// bob is white; it is not his turn
	_, err := sess.Turn(model.Player{Login: "bob"}, model.Move{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrNotYourTurn)

	_, err = sess.Turn(model.Player{Login: "alice"}, model.Move{Row: 0, Col: 0})
	s.NoError(err)
}

func (s *SessionSuite) TestTurnAlternates() {
	sess := s.startedSession()

	_, err := sess.Turn(model.Player{Login: "alice"}, model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)

	_, err = sess.Turn(model.Player{Login: "alice"}, model.Move{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrNotYourTurn)

	_, err = sess.Turn(model.Player{Login: "bob"}, model.Move{Row: 0, Col: 1})
	s.NoError(err)
}

func (s *SessionSuite) TestTurnFailsBeforeStart() {
	sess := s.newSession()
	_, err := sess.Turn(model.Player{Login: "alice"}, model.Move{})
	s.ErrorIs(err, model.ErrGameNotStarted)
}

func (s *SessionSuite) TestTurnFailsForStranger() {
	sess := s.startedSession()
	_, err := sess.Turn(model.Player{Login: "mallory"}, model.Move{})
	s.ErrorIs(err, model.ErrNotParticipant)
}

func (s *SessionSuite) TestIllegalMovePreservesTurnOrder() {
	sess := s.startedSession()
	s.engine.QueueError(model.ErrMoveIllegal)

	_, err := sess.Turn(model.Player{Login: "alice"}, model.Move{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrMoveIllegal)

	// Still alice's turn: the rejection changed nothing
	_, err = sess.Turn(model.Player{Login: "alice"}, model.Move{Row: 0, Col: 1})
	s.NoError(err)
	s.Equal(StateInProgress, sess.State())
}

// Double-pass termination

func (s *SessionSuite) TestTwoConsecutivePassesFinishGame() {
	sess := s.startedSession()

	out, err := sess.Pass(model.Player{Login: "alice"})
	s.Require().NoError(err)
	s.False(out.Finished)
	s.Equal(StateInProgress, sess.State())

	out, err = sess.Pass(model.Player{Login: "bob"})
	s.Require().NoError(err)
	s.True(out.Finished)
	s.Equal(model.Score{Black: 10, White: 16.5}, out.Score)
	s.Equal(StateFinished, sess.State())
}

func (s *SessionSuite) TestTurnResetsPassCounter() {
	sess := s.startedSession()

	_, _ = sess.Pass(model.Player{Login: "alice"})
	_, err := sess.Turn(model.Player{Login: "bob"}, model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)

	// alice's pass is no longer consecutive with bob's
	out, err := sess.Pass(model.Player{Login: "alice"})
	s.Require().NoError(err)
	s.False(out.Finished)
	s.Equal(StateInProgress, sess.State())
}

func (s *SessionSuite) TestActionsAfterFinishFail() {
	sess := s.startedSession()
	_, _ = sess.Pass(model.Player{Login: "alice"})
	_, _ = sess.Pass(model.Player{Login: "bob"})

	_, err := sess.Turn(model.Player{Login: "alice"}, model.Move{})
	s.ErrorIs(err, model.ErrGameFinished)

	_, err = sess.Pass(model.Player{Login: "alice"})
	s.ErrorIs(err, model.ErrGameFinished)
}

// Engine-signalled game end

func (s *SessionSuite) TestEngineGameOverFinalizesOnTurn() {
	sess := s.startedSession()
	s.engine.QueueError(engine.ErrGameOver)

	out, err := sess.Turn(model.Player{Login: "alice"}, model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.True(out.Finished)
	s.Equal(StateFinished, sess.State())
}

func (s *SessionSuite) TestEngineGameOverFinalizesOnPass() {
	sess := s.startedSession()
	s.engine.QueueError(engine.ErrGameOver)

	out, err := sess.Pass(model.Player{Login: "alice"})
	s.Require().NoError(err)
	s.True(out.Finished)
}

// Finish and score

func (s *SessionSuite) TestFinishIsIdempotent() {
	sess := s.startedSession()

	first := sess.Finish()
	second := sess.Finish()
	s.Equal(first, second)
	s.Equal(1, s.engine.ScoreCalls)
}

func (s *SessionSuite) TestScoreBeforeFinishFails() {
	sess := s.startedSession()
	_, err := sess.Score()
	s.ErrorIs(err, model.ErrGameNotFinished)
}

func (s *SessionSuite) TestScoreIsComputedOnceAndCached() {
	sess := s.startedSession()
	sess.Finish()

	first, err := sess.Score()
	s.Require().NoError(err)

	// A different engine result must not leak into the cached score
	s.engine.ScoreResult = model.Score{Black: 99, White: 99}

	second, err := sess.Score()
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1, s.engine.ScoreCalls)
}

// Concurrency

func (s *SessionSuite) TestConcurrentActionsApplyAtMostOnePerSlot() {
	sess := s.startedSession()

	// Both players hammer the session; only alternating actions can
	// succeed, so total successes are bounded by engine call order.
	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := map[string]int{}

	for _, login := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(login string) {
			defer wg.Done()
			for i := 0; i < attempts; i++ {
				if _, err := sess.Turn(model.Player{Login: login}, model.Move{Row: i, Col: 0}); err == nil {
					mu.Lock()
					successes[login]++
					mu.Unlock()
				}
			}
		}(login)
	}
	wg.Wait()

	// Strict alternation: the two sides' success counts can differ by
	// at most one, and every success consumed exactly one engine call.
	diff := successes["alice"] - successes["bob"]
	if diff < 0 {
		diff = -diff
	}
	s.LessOrEqual(diff, 1)
	s.Equal(successes["alice"]+successes["bob"], s.engine.TurnCalls)
}

func (s *SessionSuite) TestConcurrentDoublePassFinishesExactlyOnce() {
	for i := 0; i < 20; i++ {
		s.engine = mocks.NewMockEngine()
		sess := s.startedSession()
		_, err := sess.Pass(model.Player{Login: "alice"})
		s.Require().NoError(err)

		var wg sync.WaitGroup
		finishes := 0
		var mu sync.Mutex
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := sess.Pass(model.Player{Login: "bob"})
				if err == nil && out.Finished {
					mu.Lock()
					finishes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		s.Equal(1, finishes)
		s.Equal(1, s.engine.ScoreCalls)
	}
}
