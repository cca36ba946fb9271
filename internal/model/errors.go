package model

import "errors"

// Common errors used across the application
var (
	// Request errors
	ErrInvalidRequest = errors.New("invalid request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrLoginExists        = errors.New("login already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Registry errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrDuplicateSession = errors.New("session id already registered")
	ErrAlreadyInGame    = errors.New("player already has an active game")

	// Session errors
	ErrGameFull        = errors.New("game already has two players")
	ErrSelfJoin        = errors.New("cannot join own game")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrGameFinished    = errors.New("game is already finished")
	ErrGameNotFinished = errors.New("game is not finished")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrNotParticipant  = errors.New("player is not in this game")

	// Rule engine errors
	ErrMoveIllegal = errors.New("illegal move")
)
