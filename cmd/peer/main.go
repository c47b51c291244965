package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/commonsgame/commons-go/internal/api"
	"github.com/commonsgame/commons-go/internal/config"
	"github.com/commonsgame/commons-go/internal/dependencies/random"
	"github.com/commonsgame/commons-go/internal/factory"
	"github.com/commonsgame/commons-go/internal/model"
	redisstore "github.com/commonsgame/commons-go/internal/recordstore/redis"
)

const playerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// A peer without a configured identity becomes a brand-new player
	playerID := model.PlayerID(cfg.PlayerID)
	if playerID == "" {
		playerID = model.PlayerID("player-" + random.New().String(16, playerIDAlphabet))
		logger.Info("generated peer identity", slog.String("player_id", string(playerID)))
	}

	// Build factory config
	factoryCfg := factory.Config{
		PlayerID:  playerID,
		Params:    cfg.GameParams(),
		Logger:    logger,
		StoreType: cfg.StoreBackend,
	}

	if factoryCfg.StoreType == factory.StoreTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("COMMONS_REDIS_URL required when COMMONS_STORE=redis")
			os.Exit(1)
		}
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		DirectoryService: app.DirectoryService,
		SessionService:   app.SessionService,
		RoundService:     app.RoundService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

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

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("peer started",
		slog.String("addr", server.Addr()),
		slog.String("player_id", string(playerID)),
		slog.String("store", factoryCfg.StoreType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("peer stopped")
}
