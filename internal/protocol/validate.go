package protocol

import (
	"fmt"

	"github.com/MiracleBell/java-go-game/internal/model"
)

// Validate checks that a request carries the fields its command needs.
// Field-level mistakes fail here so services only ever see well-formed
// requests.
func Validate(req *Request) error {
	switch req.Command {
	case CmdRegister, CmdLogin:
		if req.Login == "" || req.Password == "" {
			return fmt.Errorf("%w: %s requires login and password", model.ErrInvalidRequest, req.Command)
		}
	case CmdLogout, CmdPass, CmdSurrender:
		if req.Token == "" {
			return fmt.Errorf("%w: %s requires a token", model.ErrInvalidRequest, req.Command)
		}
	case CmdCreate:
		if req.Token == "" {
			return fmt.Errorf("%w: create requires a token", model.ErrInvalidRequest)
		}
		if !req.Color.Valid() {
			return fmt.Errorf("%w: create requires color %q or %q", model.ErrInvalidRequest, model.ColorBlack, model.ColorWhite)
		}
	case CmdJoin:
		if req.Token == "" || req.SessionID == "" {
			return fmt.Errorf("%w: join requires a token and sessionId", model.ErrInvalidRequest)
		}
	case CmdTurn:
		if req.Token == "" {
			return fmt.Errorf("%w: turn requires a token", model.ErrInvalidRequest)
		}
		if req.Move == nil {
			return fmt.Errorf("%w: turn requires a move", model.ErrInvalidRequest)
		}
	case CmdFinish:
		if req.SessionID == "" {
			return fmt.Errorf("%w: finish requires a sessionId", model.ErrInvalidRequest)
		}
	case "":
		return fmt.Errorf("%w: missing command", model.ErrInvalidRequest)
	default:
		return fmt.Errorf("%w: unknown command %q", model.ErrInvalidRequest, req.Command)
	}
	return nil
}
