package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nowme-app/nowme-server/internal/analyzer"
	"github.com/nowme-app/nowme-server/internal/gate"
	"github.com/nowme-app/nowme-server/internal/server"
	"github.com/nowme-app/nowme-server/internal/session"
	"github.com/nowme-app/nowme-server/internal/telemetry"
	"github.com/nowme-app/nowme-server/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize session storage
	var store session.Store
	switch cfg.Database.Backend {
	case "redis":
		logger.Info("Using Redis session storage")
		store, err = session.NewRedisStore(cfg.Database.RedisURL, cfg.Database.SessionTTL)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	case "postgres":
		logger.Info("Using PostgreSQL session storage")
		store, err = session.NewPostgresStore(session.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	default:
		logger.Info("Using in-memory session storage")
		store = session.NewMemoryStore()
	}
	defer store.Close()

	// Initialize the analysis service
	client := analyzer.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)
	svc := analyzer.NewService(client, cfg.Analysis.QuickFloor, cfg.Analysis.RequestTimeout, logger)

	var recorder telemetry.Recorder = telemetry.NopRecorder{}
	if cfg.Telemetry.Endpoint != "" {
		recorder = telemetry.NewHTTPRecorder(cfg.Telemetry.Endpoint, logger)
	}

	gates := gate.NewManager(store, svc, recorder, cfg.Analysis.PromptDelay, cfg.Database.SessionTTL, logger)
	srv := server.New(svc, gates, store, cfg.Links, cfg.OpenAI.APIKey != "", logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}
