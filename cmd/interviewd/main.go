package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hirevox/interview-engine/internal/config"
	"github.com/hirevox/interview-engine/internal/interview"
	"github.com/hirevox/interview-engine/internal/llm/openai"
	"github.com/hirevox/interview-engine/internal/report"
	"github.com/hirevox/interview-engine/internal/server"
	"github.com/hirevox/interview-engine/internal/store"
	"github.com/hirevox/interview-engine/internal/store/sqlite"
	"github.com/hirevox/interview-engine/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.InitTracer("interview-engine", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Fatal("LLM API key is required (set INTERVIEW_LLM__API_KEY)")
	}

	clientOpts := []openai.ClientOption{
		openai.WithModel(cfg.LLM.Model),
		openai.WithTimeout(cfg.LLM.TimeoutDuration()),
		openai.WithTemperature(cfg.LLM.Temperature),
	}
	if cfg.LLM.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(cfg.LLM.BaseURL))
	}
	client := openai.NewClient(cfg.LLM.APIKey, clientOpts...)

	controllerOpts := []interview.Option{interview.WithLogger(logger)}
	if cfg.Archive.Enabled {
		archive, err := sqlite.New(cfg.Archive.Path)
		if err != nil {
			log.Fatalf("Failed to open archive database: %v", err)
		}
		defer archive.Close()
		controllerOpts = append(controllerOpts, interview.WithArchiver(archive))
		logger.Info("session archive enabled", slog.String("path", cfg.Archive.Path))
	}

	sessions := store.New()
	controller := interview.NewController(client, controllerOpts...)
	reports := report.NewGenerator(client)

	handler := server.NewHandler(sessions, controller, reports, logger)
	srv := server.New(cfg.Server.Port, cfg.Server.RequestTimeoutDuration(), logger, handler)

	// Background sweep for expired sessions and staged resumes
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(cfg.Session.CleanupInterval())
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := sessions.CleanupExpired(cfg.Session.MaxAge()); n > 0 {
					logger.Info("expired sessions cleaned", slog.Int("count", n))
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("interview engine started",
		slog.Int("port", cfg.Server.Port),
		slog.String("model", cfg.LLM.Model),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case <-sigChan:
	}

	logger.Info("shutdown signal received, stopping server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
