package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/config"
	"github.com/Dosada05/cs2-arena/db"
	"github.com/Dosada05/cs2-arena/handlers"
	"github.com/Dosada05/cs2-arena/repositories"
	api "github.com/Dosada05/cs2-arena/routes"
	"github.com/Dosada05/cs2-arena/services"
	"github.com/Dosada05/cs2-arena/storage"
)

// @title CS2 Arena API
// @version 1.0
// @description Group stage results, standings and playoff brackets for CS2 tournaments.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Int("min_winning_rounds", cfg.MinWinningRounds),
		slog.Bool("enforce_match_quota", cfg.EnforceMatchQuota))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище: Postgres, если задан DATABASE_URL, иначе в памяти
	var store repositories.Store
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
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
		if err := db.Migrate(dbConn, logger); err != nil {
			logger.Error("failed to apply migrations", slog.Any("error", err))
			os.Exit(1)
		}
		store = repositories.NewPostgresStore(dbConn)
		logger.Info("database connection established")
	} else {
		store = repositories.NewMemoryStore()
		logger.Warn("DATABASE_URL is not set, results are kept in memory only")
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Архив итогов стадий в Cloudflare R2 (необязательный)
	var archiver services.StageArchiver
	if cfg.R2.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		archiver = services.NewArchiveService(store, uploader, logger)
		logger.Info("Cloudflare R2 results archive enabled")
	}

	seed := time.Now().UnixNano()
	if cfg.GroupShuffleSeed != nil {
		seed = *cfg.GroupShuffleSeed
	}

	// Инициализация сервисов
	rules := services.ScoringRules{MinWinningRounds: cfg.MinWinningRounds, EnforceMatchQuota: cfg.EnforceMatchQuota}
	teamService := services.NewTeamService(store, wsHub, logger)
	groupService := services.NewGroupService(store, rand.New(rand.NewSource(seed)), wsHub, logger)
	matchService := services.NewMatchService(store, rules, wsHub, logger)
	bracketService := services.NewBracketService(store, archiver, wsHub, logger)
	auditService := services.NewAuditService(store, logger)
	logger.Info("Services initialized")

	// Плановая сверка таблиц с пересчетом матчей
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	scheduler := cron.New(cron.WithLogger(cronLogger), cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))
	if _, err := scheduler.AddFunc(cfg.AuditSchedule, func() {
		if _, err := auditService.RunAudit(ctx); err != nil {
			logger.Error("scheduled ledger audit failed", slog.Any("error", err))
		}
	}); err != nil {
		logger.Error("invalid AUDIT_SCHEDULE", slog.String("schedule", cfg.AuditSchedule), slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("ledger audit scheduler started", slog.String("schedule", cfg.AuditSchedule))

	// Инициализация обработчиков HTTP
	teamHandler := handlers.NewTeamHandler(teamService)
	groupHandler := handlers.NewGroupHandler(groupService)
	matchHandler := handlers.NewMatchHandler(matchService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	adminHandler := handlers.NewAdminHandler(auditService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, matchService, bracketService, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		cfg.CORSAllowedOrigins,
		teamHandler,
		groupHandler,
		matchHandler,
		bracketHandler,
		adminHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
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

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}

	<-scheduler.Stop().Done()
	logger.Info("application exited")
}
