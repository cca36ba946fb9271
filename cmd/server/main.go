package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/MiracleBell/java-go-game/internal/api"
	"github.com/MiracleBell/java-go-game/internal/factory"
	redisstorage "github.com/MiracleBell/java-go-game/internal/storage/redis"
	"github.com/MiracleBell/java-go-game/internal/transport"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if sizeEnv := os.Getenv("BOARD_SIZE"); sizeEnv != "" {
		size, err := strconv.Atoi(sizeEnv)
		if err != nil {
			logger.Error("invalid BOARD_SIZE", slog.String("value", sizeEnv))
			os.Exit(1)
		}
		cfg.BoardSize = size
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Game server over framed TCP
	gameConfig := transport.DefaultServerConfig()
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		gameConfig.Addr = addr
	}
	gameServer := transport.NewServer(app.Dispatcher, gameConfig, logger)

	// Ops server over HTTP
	opsRouter := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Registry: app.Registry,
	})
	opsConfig := api.DefaultServerConfig()
	if addr := os.Getenv("OPS_ADDR"); addr != "" {
		opsConfig.Addr = addr
	}
	opsServer := api.NewServer(opsRouter, opsConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start both servers
	errCh := make(chan error, 2)
	go func() {
		errCh <- gameServer.Start()
	}()
	go func() {
		errCh <- opsServer.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := gameServer.Shutdown(context.Background()); err != nil {
			logger.Error("game server shutdown error", slog.String("error", err.Error()))
		}
		if err := opsServer.Shutdown(context.Background()); err != nil {
			logger.Error("ops server shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}
