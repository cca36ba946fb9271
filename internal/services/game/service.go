package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MiracleBell/java-go-game/internal/dependencies/clock"
	"github.com/MiracleBell/java-go-game/internal/engine"
	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/services/auth"
	"github.com/MiracleBell/java-go-game/internal/session"
)

// Service coordinates session lifecycle across the registry and rule engines
type Service struct {
	auth     *auth.Service
	registry *session.Registry
	engines  engine.Factory
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new game Service
func New(
	authService *auth.Service,
	registry *session.Registry,
	engines engine.Factory,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		auth:     authService,
		registry: registry,
		engines:  engines,
		clock:    clock,
		logger:   logger,
	}
}

// CreateGame starts a new waiting session with the caller seated as creator
func (s *Service) CreateGame(ctx context.Context, token string, color model.Color) (*session.Session, model.Player, error) {
	user, err := s.auth.FindUserByToken(token)
	if err != nil {
		return nil, model.Player{}, err
	}

	if !color.Valid() {
		return nil, model.Player{}, model.ErrInvalidRequest
	}

	player := model.Player{Login: user.Login, Color: color}
	sess := session.New(uuid.NewString(), player, s.engines(), s.clock)

	// Registration and binding are one registry operation so two
	// concurrent creates with the same identity admit exactly one game
	if err := s.registry.CreateForPlayer(token, player, sess); err != nil {
		return nil, model.Player{}, err
	}

	s.logger.Info("game created",
		slog.String("session_id", sess.ID()),
		slog.String("login", user.Login),
		slog.String("color", string(color)),
	)

	return sess, player, nil
}

// JoinGame seats the caller in a waiting session, starting the game
func (s *Service) JoinGame(ctx context.Context, token, sessionID string) (*session.Session, model.Player, error) {
	user, err := s.auth.FindUserByToken(token)
	if err != nil {
		return nil, model.Player{}, err
	}

	sess, player, err := s.registry.JoinForPlayer(token, user.Login, sessionID)
	if err != nil {
		return nil, model.Player{}, err
	}

	s.logger.Info("game joined",
		slog.String("session_id", sess.ID()),
		slog.String("login", user.Login),
		slog.String("color", string(player.Color)),
	)

	return sess, player, nil
}

// Turn plays a stone for the caller in their current session
func (s *Service) Turn(ctx context.Context, token string, move model.Move) (session.Outcome, error) {
	sess, player, err := s.resolve(token)
	if err != nil {
		return session.Outcome{}, err
	}

	outcome, err := sess.Turn(player, move)
	if err != nil {
		return session.Outcome{}, err
	}

	if outcome.Finished {
		s.logger.Info("game finished",
			slog.String("session_id", sess.ID()),
			slog.Float64("black", outcome.Score.Black),
			slog.Float64("white", outcome.Score.White),
		)
	}
	return outcome, nil
}

// Pass skips the caller's turn; two consecutive passes finish the game
func (s *Service) Pass(ctx context.Context, token string) (session.Outcome, error) {
	sess, player, err := s.resolve(token)
	if err != nil {
		return session.Outcome{}, err
	}

	outcome, err := sess.Pass(player)
	if err != nil {
		return session.Outcome{}, err
	}

	if outcome.Finished {
		s.logger.Info("game finished",
			slog.String("session_id", sess.ID()),
			slog.Float64("black", outcome.Score.Black),
			slog.Float64("white", outcome.Score.White),
		)
	}
	return outcome, nil
}

// Surrender ends the caller's current session immediately
func (s *Service) Surrender(ctx context.Context, token string) (model.Score, error) {
	sess, player, err := s.resolve(token)
	if err != nil {
		return model.Score{}, err
	}

	score := sess.Finish()
	s.logger.Info("game surrendered",
		slog.String("session_id", sess.ID()),
		slog.String("login", player.Login),
	)
	return score, nil
}

// FinishGame force-finishes a session by id. Idempotent.
func (s *Service) FinishGame(ctx context.Context, sessionID string) (model.Score, error) {
	sess, err := s.registry.SessionByID(sessionID)
	if err != nil {
		return model.Score{}, err
	}
	return sess.Finish(), nil
}

func (s *Service) resolve(token string) (*session.Session, model.Player, error) {
	if _, err := s.auth.FindUserByToken(token); err != nil {
		return nil, model.Player{}, err
	}

	sess, err := s.registry.SessionByToken(token)
	if err != nil {
		return nil, model.Player{}, err
	}
	player, err := s.registry.PlayerByToken(token)
	if err != nil {
		return nil, model.Player{}, err
	}
	return sess, player, nil
}
