// Package protocol defines the request/response envelope exchanged over
// the framed TCP connection. Every frame carries exactly one JSON
// document: a Request from the client, a Response from the server.
package protocol

import (
	"encoding/json"

	"github.com/MiracleBell/java-go-game/internal/model"
)

// Commands accepted by the server
const (
	CmdRegister  = "register"
	CmdLogin     = "login"
	CmdLogout    = "logout"
	CmdCreate    = "create"
	CmdJoin      = "join"
	CmdTurn      = "turn"
	CmdPass      = "pass"
	CmdSurrender = "surrender"
	CmdFinish    = "finish"
)

// Response statuses
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Request is one client command
type Request struct {
	Command   string      `json:"command"`
	Token     string      `json:"token,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	Login     string      `json:"login,omitempty"`
	Password  string      `json:"password,omitempty"`
	Color     model.Color `json:"color,omitempty"`
	Move      *model.Move `json:"move,omitempty"`
}

// Response is the server's answer to one request
type Response struct {
	Status  string          `json:"status"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AuthPayload is returned by register and login
type AuthPayload struct {
	Token string `json:"token"`
}

// CreatePayload is returned by create
type CreatePayload struct {
	SessionID string      `json:"sessionId"`
	Color     model.Color `json:"color"`
}

// JoinPayload is returned by join
type JoinPayload struct {
	SessionID string      `json:"sessionId"`
	Color     model.Color `json:"color"`
}

// BoardPayload is returned by turn and pass while the game continues
type BoardPayload struct {
	Board model.Board `json:"board"`
}

// ScorePayload is returned when a game finishes
type ScorePayload struct {
	Score model.Score `json:"score"`
}

// Success builds a SUCCESS response carrying the given payload
func Success(payload any) (Response, error) {
	if payload == nil {
		return Response{Status: StatusSuccess}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: StatusSuccess, Payload: data}, nil
}
