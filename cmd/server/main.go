package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/handler"
	"github.com/stemsi/gatemock-backend/internal/logger"
	"github.com/stemsi/gatemock-backend/internal/repository"
	"github.com/stemsi/gatemock-backend/internal/router"
	"github.com/stemsi/gatemock-backend/internal/service"
	"github.com/stemsi/gatemock-backend/internal/validator"
	"github.com/stemsi/gatemock-backend/internal/worker"
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
		Str("storage", cfg.StorageDriver).
		Msg("Starting GATE Mock Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Storage ────────────────────────────────────────────
	storage, err := repository.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer storage.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(storage.KV, log)
	resultRepo := repository.NewResultRepository(storage.KV, log)
	statsRepo := repository.NewStatsRepository(storage.KV, log)
	userRepo := repository.NewCurrentUserRepository(storage.KV, log)
	pendingRepo := repository.NewPendingWriteRepository(storage.KV, log)

	// Seed the bank BEFORE accepting traffic so the first exam sees it.
	if seeded, err := questionRepo.EnsureSeeded(ctx); err != nil {
		log.Warn().Err(err).Msg("Question bank seeding failed")
	} else if seeded {
		log.Info().Msg("Seeded initial question bank")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	recorder := service.NewRecorderService(resultRepo, statsRepo, nil, log)
	retryWorker := worker.NewResultRetryWorker(recorder, pendingRepo, cfg.RetryInterval, log)
	recorder.SetRetryQueue(retryWorker)

	examOpts := []service.ExamOption{service.WithTickInterval(cfg.TickInterval)}
	if storage.Redis != nil {
		examOpts = append(examOpts, service.WithEventPublisher(service.NewRedisEventPublisher(storage.Redis)))
	}
	examService := service.NewExamService(questionRepo, recorder, log, examOpts...)
	questionService := service.NewQuestionService(questionRepo, log)
	dashboardService := service.NewDashboardService(questionRepo, resultRepo, statsRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Exam:        handler.NewExamHandler(examService),
		Question:    handler.NewQuestionHandler(questionService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		CurrentUser: handler.NewCurrentUserHandler(userRepo),
		System:      handler.NewSystemHandler(pendingRepo, storage.Driver, log),
		WS:          handler.NewWSHandler(examService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	go retryWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, userRepo, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	// 2. Stop running countdowns.
	examService.Close()

	// 3. Stop the retry worker and wait for it to park pending writes.
	workerCancel()
	select {
	case <-retryWorker.Done():
	case <-time.After(worker.RetryParkTimeout + time.Second):
		log.Warn().Msg("Retry worker did not stop in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
