package transport

import (
	"context"
	"log/slog"

	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/protocol"
	"github.com/MiracleBell/java-go-game/internal/services/auth"
	"github.com/MiracleBell/java-go-game/internal/services/game"
	"github.com/MiracleBell/java-go-game/internal/session"
)

// Dispatcher routes decoded requests to the auth and game services
type Dispatcher struct {
	auth   *auth.Service
	game   *game.Service
	logger *slog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(authService *auth.Service, gameService *game.Service, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		auth:   authService,
		game:   gameService,
		logger: logger,
	}
}

// Dispatch handles a single request and always produces a response.
// Service errors become ERROR responses; the connection stays usable.
func (d *Dispatcher) Dispatch(ctx context.Context, req *protocol.Request) protocol.Response {
	if err := protocol.Validate(req); err != nil {
		return protocol.ErrorResponse(err)
	}

	resp, err := d.handle(ctx, req)
	if err != nil {
		d.logger.Debug("request failed",
			slog.String("command", req.Command),
			slog.String("error", err.Error()),
		)
		return protocol.ErrorResponse(err)
	}
	return resp
}

func (d *Dispatcher) handle(ctx context.Context, req *protocol.Request) (protocol.Response, error) {
	switch req.Command {
	case protocol.CmdRegister:
		token, err := d.auth.Register(ctx, req.Login, req.Password)
		if err != nil {
			return protocol.Response{}, err
		}
		return protocol.Success(protocol.AuthPayload{Token: token.Value})

	case protocol.CmdLogin:
		token, err := d.auth.Login(ctx, req.Login, req.Password)
		if err != nil {
			return protocol.Response{}, err
		}
		return protocol.Success(protocol.AuthPayload{Token: token.Value})

	case protocol.CmdLogout:
		d.auth.Logout(req.Token)
		return protocol.Success(nil)

	case protocol.CmdCreate:
		sess, player, err := d.game.CreateGame(ctx, req.Token, req.Color)
		if err != nil {
			return protocol.Response{}, err
		}
		return protocol.Success(protocol.CreatePayload{SessionID: sess.ID(), Color: player.Color})

	case protocol.CmdJoin:
		sess, player, err := d.game.JoinGame(ctx, req.Token, req.SessionID)
		if err != nil {
			return protocol.Response{}, err
		}
		return protocol.Success(protocol.JoinPayload{SessionID: sess.ID(), Color: player.Color})

	case protocol.CmdTurn:
		outcome, err := d.game.Turn(ctx, req.Token, *req.Move)
		if err != nil {
			return protocol.Response{}, err
		}
		return outcomeResponse(outcome)

	case protocol.CmdPass:
		outcome, err := d.game.Pass(ctx, req.Token)
		if err != nil {
			return protocol.Response{}, err
		}
		return outcomeResponse(outcome)

	case protocol.CmdSurrender:
		score, err := d.game.Surrender(ctx, req.Token)
		if err != nil {
			return protocol.Response{}, err
		}
		return protocol.Success(protocol.ScorePayload{Score: score})

	case protocol.CmdFinish:
		score, err := d.game.FinishGame(ctx, req.SessionID)
		if err != nil {
			return protocol.Response{}, err
		}
		return protocol.Success(protocol.ScorePayload{Score: score})
	}

	return protocol.ErrorResponse(model.ErrInvalidRequest), nil
}

// outcomeResponse renders a turn or pass result: the score once the
// game finished, the updated board otherwise
func outcomeResponse(outcome session.Outcome) (protocol.Response, error) {
	if outcome.Finished {
		return protocol.Success(protocol.ScorePayload{Score: outcome.Score})
	}
	return protocol.Success(protocol.BoardPayload{Board: outcome.Board})
}
