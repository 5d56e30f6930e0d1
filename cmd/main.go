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

	"github.com/avelychko/league-roster/config"
	"github.com/avelychko/league-roster/db"
	"github.com/avelychko/league-roster/handlers"
	"github.com/avelychko/league-roster/live"
	"github.com/avelychko/league-roster/repositories"
	api "github.com/avelychko/league-roster/routes"
	"github.com/avelychko/league-roster/services"
	"github.com/avelychko/league-roster/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const seedTimeout = 10 * time.Second

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
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Logo storage is optional: without R2 credentials the upload routes
	// report the storage as unavailable.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize logo storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("logo storage initialized")
	} else {
		logger.Warn("logo storage not configured, upload routes disabled")
	}

	rosterHub := live.NewHub()
	go rosterHub.Run()
	logger.Info("roster feed hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	roleRepo := repositories.NewPostgresRoleRepository(dbConn)
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, roleRepo)
	sportService := services.NewSportService(sportRepo, uploader, rosterHub)
	teamService := services.NewTeamService(teamRepo, sportRepo, uploader, rosterHub)
	playerService := services.NewPlayerService(playerRepo, teamRepo, rosterHub)
	statsService := services.NewStatsService(sportRepo, teamRepo, playerRepo)
	logger.Info("services initialized")

	// Seed roles and the admin grant before accepting traffic. A failed seed
	// is logged but never blocks startup.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), seedTimeout)
	if err := services.SeedRolesAndAdmin(seedCtx, roleRepo, userRepo, cfg.AdminEmail, logger); err != nil {
		logger.Error("startup seeding failed, continuing without it", slog.Any("error", err))
	} else {
		logger.Info("startup seeding complete")
	}
	cancelSeed()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	sportHandler := handlers.NewSportHandler(sportService)
	teamHandler := handlers.NewTeamHandler(teamService, sportService)
	playerHandler := handlers.NewPlayerHandler(playerService, teamService)
	statsHandler := handlers.NewStatsHandler(statsService)
	webSocketHandler := handlers.NewWebSocketHandler(rosterHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		sportHandler,
		teamHandler,
		playerHandler,
		statsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
