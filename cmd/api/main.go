package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rbeaumont/questtrail/internal/config"
	"github.com/rbeaumont/questtrail/internal/handlers"
	"github.com/rbeaumont/questtrail/internal/logger"
	"github.com/rbeaumont/questtrail/internal/services/queue"
	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/journey"
	"github.com/rbeaumont/questtrail/pkg/progress"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Questtrail API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	queueClient, err := queue.NewClient("redis://"+cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to connect queue client", "error", err)
		os.Exit(1)
	}
	completions := queue.NewCompletionQueue(queueClient)

	progressStore := progress.NewStore(store, log)
	orchestrator := journey.New(progressStore, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	progressHandler := handlers.NewProgressHandler(progressStore, completions, log)
	mux.Handle("/v1/progress", progressHandler)
	mux.Handle("/v1/progress/", progressHandler)

	questsHandler := handlers.NewQuestsHandler(store, log)
	mux.Handle("/v1/quests", questsHandler)
	mux.Handle("/v1/quests/", questsHandler)

	attemptsHandler := handlers.NewAttemptsHandler(store, orchestrator, completions, log)
	mux.Handle("/v1/attempts", attemptsHandler)

	navigationHandler := handlers.NewNavigationHandler(store, log)
	mux.Handle("/v1/navigation", navigationHandler)
	mux.Handle("/v1/navigation/", navigationHandler)

	memoriesHandler := handlers.NewMemoriesHandler(store, log)
	mux.Handle("/v1/memories", memoriesHandler)

	eventsHandler := handlers.NewEventsHandler(store.Client(), log)
	mux.Handle("/v1/events/adventure", eventsHandler)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout omitted so the SSE endpoint can stream
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := queueClient.Close(); err != nil {
		log.Error("Error closing queue connection", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
