package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/protocol"
)

// ServerConfig holds configuration for the TCP server
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns sensible defaults for server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":4000",
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server accepts TCP connections and serves one framed request/response
// loop per connection, each on its own goroutine.
type Server struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
	config     ServerConfig

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	wg       sync.WaitGroup
}

// NewServer creates a new TCP server
func NewServer(dispatcher *Dispatcher, config ServerConfig, logger *slog.Logger) *Server {
	return &Server{
		dispatcher: dispatcher,
		logger:     logger,
		config:     config,
		conns:      make(map[net.Conn]struct{}),
	}
}

// Start begins accepting connections. It blocks until Shutdown is
// called or the listener fails.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("game server listening", slog.String("addr", listener.Addr().String()))

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.track(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.serveConn(conn)
		}()
	}
}

// Addr returns the bound listen address, or the configured address if
// the server has not started yet
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// Shutdown stops accepting connections and waits for in-flight
// connections to drain, closing them forcibly once the timeout expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down game server")

	s.mu.Lock()
	s.closed = true
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		s.mu.Lock()
		for conn := range s.conns {
			_ = conn.Close()
		}
		s.mu.Unlock()
		<-done
	}

	s.logger.Info("game server stopped")
	return nil
}

// serveConn runs the request/response loop for one client
func (s *Server) serveConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	logger := s.logger.With(slog.String("remote", conn.RemoteAddr().String()))
	logger.Info("client connected")
	defer logger.Info("client disconnected")

	ctx := context.Background()

	for {
		frame, err := ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logger.Warn("read failed", slog.String("error", err.Error()))
			}
			return
		}

		resp := s.handleFrame(ctx, frame)

		data, err := json.Marshal(resp)
		if err != nil {
			logger.Error("response marshal failed", slog.String("error", err.Error()))
			return
		}
		if err := WriteFrame(conn, data); err != nil {
			logger.Warn("write failed", slog.String("error", err.Error()))
			return
		}
	}
}

func (s *Server) handleFrame(ctx context.Context, frame []byte) protocol.Response {
	var req protocol.Request
	if err := json.Unmarshal(frame, &req); err != nil {
		return protocol.ErrorResponse(fmt.Errorf("%w: malformed json", model.ErrInvalidRequest))
	}
	return s.dispatcher.Dispatch(ctx, &req)
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
