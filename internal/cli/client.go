package cli

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/MiracleBell/java-go-game/internal/protocol"
	"github.com/MiracleBell/java-go-game/internal/transport"
)

// Client sends framed requests to the game server, one connection per
// command invocation
type Client struct {
	addr    string
	token   string
	timeout time.Duration
}

// NewClient creates a new game client
func NewClient(addr, token string) *Client {
	return &Client{
		addr:    addr,
		token:   token,
		timeout: 30 * time.Second,
	}
}

// Do sends one request and returns the server's response. The client's
// token is attached unless the request carries its own.
func (c *Client) Do(req protocol.Request) (*protocol.Response, error) {
	if req.Token == "" {
		req.Token = c.token
	}

	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", c.addr, err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	if err := transport.WriteFrame(conn, data); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	frame, err := transport.ReadFrame(conn)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp protocol.Response
	if err := json.Unmarshal(frame, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.Status == protocol.StatusError {
		return nil, fmt.Errorf("%s (%s)", resp.Message, resp.Code)
	}
	return &resp, nil
}

// decodePayload unmarshals a response payload into out
func decodePayload(resp *protocol.Response, out any) error {
	if len(resp.Payload) == 0 {
		return fmt.Errorf("response has no payload")
	}
	return json.Unmarshal(resp.Payload, out)
}
