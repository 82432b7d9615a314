package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/config"
	"github.com/notelog/backend/internal/db"
	"github.com/notelog/backend/internal/handler"
	"github.com/notelog/backend/internal/service"
)

// @title NoteLog API
// @version 1.0
// @description Personal notes, todos, contacts and custom notes behind bearer-token auth.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := setupLogger(cfg.Env)
	if cfg.Env == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, closeStore, err := buildServices(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	router := handler.NewRouter(services, cfg.CORS.AllowedOrigins, logger)
	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.HTTP.Address), slog.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

// buildServices - STORE_DRIVER에 따라 저장소를 고르고 서비스를 조립한다.
func buildServices(ctx context.Context, cfg config.Config, logger *slog.Logger) (handler.Services, func(), error) {
	tokens, err := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return handler.Services{}, nil, err
	}

	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return handler.Services{
			Auth:        service.NewAuthService(db.NewMemoryUsers(), tokens),
			Notes:       service.NewNoteService(db.NewMemoryCollection(db.NotesTable)),
			Todos:       service.NewTodoService(db.NewMemoryCollection(db.TodosTable)),
			Contacts:    service.NewContactService(db.NewMemoryCollection(db.ContactsTable)),
			CustomNotes: service.NewCustomNoteService(db.NewMemoryCollection(db.CustomNotesTable)),
		}, func() {}, nil
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return handler.Services{}, nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return handler.Services{}, nil, err
	}
	logger.Info("postgres ready")

	return handler.Services{
		Auth:        service.NewAuthService(db.NewPostgres(pool), tokens),
		Notes:       service.NewNoteService(db.NewCollection(pool, db.NotesTable)),
		Todos:       service.NewTodoService(db.NewCollection(pool, db.TodosTable)),
		Contacts:    service.NewContactService(db.NewCollection(pool, db.ContactsTable)),
		CustomNotes: service.NewCustomNoteService(db.NewCollection(pool, db.CustomNotesTable)),
	}, pool.Close, nil
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case config.EnvLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return logger
}
