package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/launchdesk/portal/internal/adminview"
	"github.com/launchdesk/portal/internal/api"
	"github.com/launchdesk/portal/internal/core/service"
	"github.com/launchdesk/portal/internal/infrastructure/config"
	mongodb "github.com/launchdesk/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/launchdesk/portal/internal/infrastructure/db/redis"
	"github.com/launchdesk/portal/internal/infrastructure/notify"
	"github.com/launchdesk/portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting launch portal")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	identityRepo := mongodb.NewIdentityRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	workItemRepo := mongodb.NewWorkItemRepository(db)

	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("identity indexes")
	}
	if err := workItemRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("work item indexes")
	}

	resetCodes := redisdb.NewResetCodeStore(rdb, cfg.ResetCodeTTL)
	ssoTokens := redisdb.NewSSOTokenStore(rdb)
	denylist := redisdb.NewTokenDenylist(rdb)
	notifier := notify.NewLogNotifier(log)
	watcher := mongodb.NewWatcher(db, log)

	// --- Admin projection ---
	view := adminview.New(profileRepo, workItemRepo, watcher, log)
	if err := view.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin view start failed")
	}
	defer view.Stop()

	// --- Services ---
	sessions := service.NewSessionService(identityRepo, profileRepo, resetCodes, notifier, denylist, cfg.JWTSecret, cfg.SessionTTL, log)
	work := service.NewWorkService(workItemRepo, profileRepo, view, log)
	admin := service.NewAdminService(identityRepo, profileRepo, workItemRepo, view, log)
	sso := service.NewSSOService(profileRepo, ssoTokens, cfg.SSOTokenTTL, log)

	e := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		Work:        work,
		Admin:       admin,
		SSO:         sso,
		Revocations: denylist,
		Mongo:       db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
