package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opencourt/tournament-engine/brackets"
	"github.com/opencourt/tournament-engine/config"
	"github.com/opencourt/tournament-engine/db"
	"github.com/opencourt/tournament-engine/handlers"
	"github.com/opencourt/tournament-engine/repositories"
	"github.com/opencourt/tournament-engine/routes"
	"github.com/opencourt/tournament-engine/services"
	"github.com/opencourt/tournament-engine/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize results uploader", slog.Any("error", err))
		os.Exit(1)
	}

	hub := brackets.NewHub(logger)
	go hub.Run()

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	scoringRepo := repositories.NewPostgresScoringRepository(dbConn)

	scoringService := services.NewScoringService(tournamentRepo, categoryRepo, registrationRepo, matchRepo, scoringRepo, logger)
	progressionService := services.NewProgressionService(dbConn, matchRepo, registrationRepo, categoryRepo, hub, logger)
	exportService := services.NewExportService(tournamentRepo, categoryRepo, registrationRepo, matchRepo, scoringRepo, uploader, logger)
	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey)

	router := routes.New(routes.Handlers{
		Scoring:   handlers.NewScoringHandler(scoringService),
		Match:     handlers.NewMatchHandler(progressionService),
		Category:  handlers.NewCategoryHandler(progressionService, exportService),
		Auth:      handlers.NewAuthHandler(authService),
		WebSocket: handlers.NewWebSocketHandler(hub),
	}, []byte(cfg.JWTSecretKey))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down server", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(ctx)
	}()

	logger.Info("starting server", slog.String("addr", server.Addr))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
