package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyericho/backkeeper/app/ai"
	"github.com/hyericho/backkeeper/app/api"
	"github.com/hyericho/backkeeper/app/cfg"
	"github.com/hyericho/backkeeper/app/config"
	"github.com/hyericho/backkeeper/app/database"
	"github.com/hyericho/backkeeper/app/feed"
	"github.com/hyericho/backkeeper/app/kakao"
	"github.com/hyericho/backkeeper/app/notion"
	"github.com/hyericho/backkeeper/app/pipeline"
	"github.com/hyericho/backkeeper/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting Backkeeper server", "version", appCfg.Version)

	pipelineCfg, err := config.Load(appCfg.PipelinesConfig)
	if err != nil {
		log.Fatalf("Failed to load pipelines config: %v", err)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open run history database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Run history database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	runRepo := database.NewRunRepository(db)

	// External clients. The store client is always constructed; pipelines
	// check for the token themselves and degrade to an error summary.
	store := notion.NewClient(appCfg.NotionToken, appCfg.UserAgent)
	notifier := kakao.NewNotifier(appCfg.KakaoToken)
	orderFeed := feed.NewFetcher(pipelineCfg.Feed, appCfg.UserAgent)

	var copywriter pipeline.Copywriter
	if appCfg.GeminiAPIKey != "" {
		aiClient, err := ai.NewClient(context.Background(), appCfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create AI client: %v", err)
		}
		copywriter = aiClient
	} else {
		slog.Warn("GEMINI_API_KEY not set, summarize and detail-copy pipelines disabled")
	}

	runner := pipeline.NewRunner(appCfg, pipelineCfg, store, copywriter, notifier, orderFeed)

	slog.Info("Starting background scheduler",
		"interval_seconds", appCfg.SchedulerInterval,
		"workers", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(runner, runRepo,
		time.Duration(appCfg.SchedulerInterval)*time.Second, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(runner, runRepo, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // pipeline runs block the request
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
