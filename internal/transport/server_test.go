package transport

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiracleBell/java-go-game/internal/dependencies/mocks"
	"github.com/MiracleBell/java-go-game/internal/engine"
	"github.com/MiracleBell/java-go-game/internal/protocol"
	"github.com/MiracleBell/java-go-game/internal/services/auth"
	"github.com/MiracleBell/java-go-game/internal/services/game"
	"github.com/MiracleBell/java-go-game/internal/session"
	"github.com/MiracleBell/java-go-game/internal/storage/memory"
	"github.com/MiracleBell/java-go-game/internal/testutil"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()

	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	authSvc := auth.New(memory.New(), clk, auth.DefaultConfig())
	gameSvc := game.New(authSvc, session.NewRegistry(), engine.NewDefaultFactory(9), clk, testutil.NopLogger())
	dispatcher := NewDispatcher(authSvc, gameSvc, testutil.NopLogger())

	srv := NewServer(dispatcher, ServerConfig{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: 5 * time.Second,
	}, testutil.NopLogger())

	go func() {
		if err := srv.Start(); err != nil {
			t.Errorf("server start: %v", err)
		}
	}()

	require.Eventually(t, func() bool {
		return srv.Addr() != "127.0.0.1:0"
	}, 2*time.Second, 10*time.Millisecond, "server never bound")

	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})

	return srv
}

func roundTrip(t *testing.T, conn net.Conn, req protocol.Request) protocol.Response {
	t.Helper()

	data, err := json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, WriteFrame(conn, data))

	frame, err := ReadFrame(conn)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(frame, &resp))
	return resp
}

func TestServerHandlesRequestsOverTCP(t *testing.T) {
	srv := startTestServer(t)

	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	resp := roundTrip(t, conn, protocol.Request{
		Command:  protocol.CmdRegister,
		Login:    "alice",
		Password: "password123",
	})
	require.Equal(t, protocol.StatusSuccess, resp.Status)

	var payload protocol.AuthPayload
	require.NoError(t, json.Unmarshal(resp.Payload, &payload))
	assert.NotEmpty(t, payload.Token)
}

func TestServerSurvivesMalformedFrame(t *testing.T) {
	srv := startTestServer(t)

	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.NoError(t, WriteFrame(conn, []byte("this is not json")))

	frame, err := ReadFrame(conn)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(frame, &resp))
	assert.Equal(t, protocol.StatusError, resp.Status)
	assert.Equal(t, protocol.CodeInvalidRequest, resp.Code)

	// Connection is still usable after a bad frame
	resp = roundTrip(t, conn, protocol.Request{
		Command:  protocol.CmdRegister,
		Login:    "bob",
		Password: "password123",
	})
	assert.Equal(t, protocol.StatusSuccess, resp.Status)
}

func TestServerServesConnectionsConcurrently(t *testing.T) {
	srv := startTestServer(t)

	aliceConn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer func() { _ = aliceConn.Close() }()

	bobConn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer func() { _ = bobConn.Close() }()

	aliceResp := roundTrip(t, aliceConn, protocol.Request{
		Command: protocol.CmdRegister, Login: "alice", Password: "pw123456",
	})
	require.Equal(t, protocol.StatusSuccess, aliceResp.Status)
	bobResp := roundTrip(t, bobConn, protocol.Request{
		Command: protocol.CmdRegister, Login: "bob", Password: "pw123456",
	})
	require.Equal(t, protocol.StatusSuccess, bobResp.Status)
}
