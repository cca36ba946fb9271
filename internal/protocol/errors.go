package protocol

import (
	"errors"

	"github.com/MiracleBell/java-go-game/internal/model"
)

// Error codes carried in ERROR responses
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeLoginExists        = "LOGIN_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeAlreadyInGame      = "ALREADY_IN_GAME"
	CodeGameFull           = "GAME_FULL"
	CodeSelfJoin           = "SELF_JOIN"
	CodeGameNotStarted     = "GAME_NOT_STARTED"
	CodeGameFinished       = "GAME_FINISHED"
	CodeGameNotFinished    = "GAME_NOT_FINISHED"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeNotParticipant     = "NOT_A_PARTICIPANT"
	CodeMoveIllegal        = "MOVE_ILLEGAL"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ErrorResponse maps a service error to an ERROR response. Unknown
// errors collapse to INTERNAL_ERROR so internals never leak to clients.
func ErrorResponse(err error) Response {
	code, message := toCode(err)
	return Response{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}
}

func toCode(err error) (string, string) {
	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		return CodeInvalidRequest, err.Error()
	case errors.Is(err, model.ErrInvalidToken):
		return CodeUnauthorized, "invalid or expired token"
	case errors.Is(err, model.ErrInvalidCredentials):
		return CodeInvalidCredentials, "invalid login or password"
	case errors.Is(err, model.ErrLoginExists):
		return CodeLoginExists, "login already registered"
	case errors.Is(err, model.ErrUserNotFound):
		return CodeUserNotFound, "user not found"
	case errors.Is(err, model.ErrSessionNotFound):
		return CodeSessionNotFound, "session not found"
	case errors.Is(err, model.ErrAlreadyInGame):
		return CodeAlreadyInGame, "player already has an active game"
	case errors.Is(err, model.ErrGameFull):
		return CodeGameFull, "game already has two players"
	case errors.Is(err, model.ErrSelfJoin):
		return CodeSelfJoin, "cannot join own game"
	case errors.Is(err, model.ErrGameNotStarted):
		return CodeGameNotStarted, "game has not started"
	case errors.Is(err, model.ErrGameFinished):
		return CodeGameFinished, "game is already finished"
	case errors.Is(err, model.ErrGameNotFinished):
		return CodeGameNotFinished, "game is not finished"
	case errors.Is(err, model.ErrNotYourTurn):
		return CodeNotYourTurn, "not your turn"
	case errors.Is(err, model.ErrNotParticipant):
		return CodeNotParticipant, "not a participant of this game"
	case errors.Is(err, model.ErrMoveIllegal):
		return CodeMoveIllegal, err.Error()
	default:
		return CodeInternalError, "internal server error"
	}
}
