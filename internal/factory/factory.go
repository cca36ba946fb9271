// Package factory wires application components together
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/MiracleBell/java-go-game/internal/dependencies/clock"
	"github.com/MiracleBell/java-go-game/internal/engine"
	"github.com/MiracleBell/java-go-game/internal/services/auth"
	"github.com/MiracleBell/java-go-game/internal/services/game"
	"github.com/MiracleBell/java-go-game/internal/session"
	"github.com/MiracleBell/java-go-game/internal/storage"
	"github.com/MiracleBell/java-go-game/internal/storage/memory"
	redisstorage "github.com/MiracleBell/java-go-game/internal/storage/redis"
	"github.com/MiracleBell/java-go-game/internal/transport"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Store    storage.UserStore
	Clock    clock.Clock
	Registry *session.Registry

	AuthService *auth.Service
	GameService *game.Service
	Dispatcher  *transport.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the account store backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// BoardSize is the board edge length for new games
	// If zero, defaults to engine.DefaultBoardSize
	BoardSize int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.UserStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	boardSize := cfg.BoardSize
	if boardSize == 0 {
		boardSize = engine.DefaultBoardSize
	}

	return newWithDependencies(store, clock.New(), cfg.AuthConfig, boardSize, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.UserStore, clk clock.Clock, authCfg auth.Config, boardSize int, logger *slog.Logger) *App {
	registry := session.NewRegistry()
	authService := auth.New(store, clk, authCfg)
	gameService := game.New(authService, registry, engine.NewDefaultFactory(boardSize), clk, logger)
	dispatcher := transport.NewDispatcher(authService, gameService, logger)

	return &App{
		Store:       store,
		Clock:       clk,
		Registry:    registry,
		AuthService: authService,
		GameService: gameService,
		Dispatcher:  dispatcher,
	}
}
