package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/freelancehub/marketplace/internal/api"
	"github.com/freelancehub/marketplace/internal/api/handler"
	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/core/service"
	mongostore "github.com/freelancehub/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/freelancehub/marketplace/internal/infrastructure/db/redis"
	"github.com/freelancehub/marketplace/internal/pkg/config"
	"github.com/freelancehub/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "freelancehub",
	})

	if err := run(ctx, cfg); err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	projects := mongostore.NewProjectRepository(db)
	reviews := mongostore.NewReviewRepository(db)

	if err := users.EnsureIndexes(ctx, cfg.Mongo.UniqueUsernames); err != nil {
		return err
	}
	if err := reviews.EnsureIndexes(ctx); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e, err := api.NewRouter(api.Dependencies{
		Auth:      service.NewAuthService(users, redisstore.NewSessionRevoker(rdb), cfg.Session.Secret, cfg.Session.TTL, log),
		Directory: service.NewDirectoryService(users, log),
		Projects:  service.NewProjectService(projects, log),
		Reviews:   service.NewReviewService(reviews, users, log),
		Readiness: map[string]handler.Pinger{
			"mongodb": mongostore.NewPinger(db),
			"redis":   redisstore.NewPinger(rdb),
		},
		SessionCookie: middleware.SessionCookie{Name: "session", Secure: cfg.IsProduction()},
		Registry:      reg,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
