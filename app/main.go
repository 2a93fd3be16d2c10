package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avoronkov/newsbrief/app/api"
	"github.com/avoronkov/newsbrief/app/cfg"
	"github.com/avoronkov/newsbrief/app/database"
	"github.com/avoronkov/newsbrief/app/ingest"
	"github.com/avoronkov/newsbrief/app/llm"
	"github.com/avoronkov/newsbrief/app/sources"
	"github.com/avoronkov/newsbrief/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting NewsBrief server", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	sourceRepo := database.NewSourceRepo(db)
	articleRepo := database.NewArticleRepo(db)
	activityLogRepo := database.NewActivityLogRepo(db)

	// Seed the source registry from the YAML file, when present
	if seeds, err := sources.LoadSeedFile(appCfg.SourcesFile); err != nil {
		slog.Warn("Source seed file not loaded", "file", appCfg.SourcesFile, "error", err)
	} else {
		registered := sources.Register(context.Background(), sourceRepo, seeds)
		slog.Info("Source registry seeded", "registered", registered, "total", len(seeds))
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	fetcher := ingest.NewFetcher(httpClient, appCfg.UserAgent)
	dedup := ingest.NewDeduplicator(articleRepo, appCfg.DedupFailClosed)
	summarizer := llm.NewSummarizer(appCfg.OpenAIEndpoint, appCfg.OpenAIAPIKey,
		appCfg.OpenAIModel, appCfg.SummaryMaxTokens,
		appCfg.InputCostPer1K, appCfg.OutputCostPer1K)

	var extractor ingest.ExtractorInterface
	if appCfg.ExtractContent {
		extractor = ingest.NewContentExtractor(httpClient, appCfg.UserAgent)
	}

	orchestrator := ingest.NewOrchestrator(sourceRepo, articleRepo, activityLogRepo,
		fetcher, dedup, summarizer, extractor)
	validator := ingest.NewLinkValidator(articleRepo, httpClient, appCfg.UserAgent)

	scheduler := tasks.NewScheduler(orchestrator, validator,
		time.Duration(appCfg.SchedulerInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(db, sourceRepo, articleRepo, orchestrator, validator)
	server := api.NewServer(handler, appCfg.CronSecret)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 6 * time.Minute, // ingestion runs block the trigger request
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
