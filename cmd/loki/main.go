package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeSquared-Agency/loki/internal/api"
	"github.com/MikeSquared-Agency/loki/internal/config"
	"github.com/MikeSquared-Agency/loki/internal/engine"
	"github.com/MikeSquared-Agency/loki/internal/hermes"
	"github.com/MikeSquared-Agency/loki/internal/session"
	"github.com/MikeSquared-Agency/loki/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("loki starting", "port", cfg.Port)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		slog.Error("LOKI_API_KEY is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session store — Redis when configured, in-process otherwise.
	var sessions session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		sessions = redisStore
		slog.Info("redis session store ready")
	} else {
		sessions = session.NewMemoryStore()
		slog.Warn("no REDIS_URL — sessions are in-memory and lost on restart")
	}

	// Engagement archive (optional — loki works without Postgres, just no history)
	var archive *store.Store
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		archive = db
		slog.Info("engagement archive connected")
	} else {
		slog.Warn("no DATABASE_URL — running without engagement archive")
	}

	// Swarm bus (optional — loki runs standalone without NATS)
	var bus *hermes.Client
	if cfg.NatsURL != "" {
		client, err := hermes.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		bus = client
		slog.Info("NATS connected", "url", cfg.NatsURL)

		if err := bus.Publish(hermes.SubjectRegistered, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	} else {
		slog.Warn("no NATS_URL — intel events will not be published")
	}

	eng := engine.New(sessions, archive, bus, cfg.SessionTTL, slog.Default())

	srv := api.NewServer(cfg, eng, archive)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("loki ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("loki stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
