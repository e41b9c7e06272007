package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/database"
	"github.com/vocastudio/voca-backend/internal/handler"
	"github.com/vocastudio/voca-backend/internal/logger"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/router"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/testgen"
	"github.com/vocastudio/voca-backend/internal/validator"
	"github.com/vocastudio/voca-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Voca Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	academyRepo := repository.NewAcademyRepository(pool)
	wordbookRepo := repository.NewWordbookRepository(pool)
	wordRepo := repository.NewWordRepository(pool)
	resultRepo := repository.NewTestResultRepository(pool)
	gameScoreRepo := repository.NewGameScoreRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService, log)
	academyService := service.NewAcademyService(academyRepo, log)
	wordbookService := service.NewWordbookService(wordbookRepo, log)
	wordService := service.NewWordService(wordRepo, log)
	testService := service.NewTestService(wordRepo, testgen.NewGenerator(nil), rdb, log)
	resultService := service.NewResultService(resultRepo, log)
	gameService := service.NewGameService(gameScoreRepo, userRepo, rdb, log)
	notificationService := service.NewNotificationService(announcementRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		Academy:      handler.NewAcademyHandler(academyService),
		User:         handler.NewUserHandler(userService, authService),
		Wordbook:     handler.NewWordbookHandler(wordbookService, wordService, testService, cfg.MaxUploadBytes),
		Word:         handler.NewWordHandler(wordService, wordbookService, testService),
		Test:         handler.NewTestHandler(testService, wordbookService, resultService),
		Game:         handler.NewGameHandler(gameService, wordbookService),
		Notification: handler.NewNotificationHandler(notificationService),
		WS:           handler.NewWSHandler(notificationService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	resultWorker := worker.NewResultWorker(resultRepo, rdb, log)
	gameScoreWorker := worker.NewGameScoreWorker(gameScoreRepo, rdb, log)

	go resultWorker.Start(workerCtx)
	go gameScoreWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
