package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/config"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/db"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/metrics"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/repository"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/reviewer"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/router"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/services"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/storage"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			serve()
			return nil
		},
	}
}

func serve() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Run migrations before opening the pool
	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		logger.Fatal("Failed to register metrics", "error", err)
	}

	// Initialize object storage
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.NewS3Storage(initCtx, storage.Options{
		Endpoint:      cfg.S3Endpoint,
		AccessKeyID:   cfg.S3AccessKeyID,
		SecretKey:     cfg.S3SecretAccessKey,
		BucketName:    cfg.S3BucketName,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	cancelInit()
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", "error", err)
	}

	// Initialize reviewer client
	rev := reviewer.NewClient(reviewer.Options{
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		AssistantID:  cfg.AssistantID,
		PollInterval: cfg.PollInterval,
		MaxPolls:     cfg.MaxPolls,
		RunTimeout:   cfg.RunTimeout,
	}, logger.With("component", "reviewer"))
	if cfg.AssistantID == "" {
		logger.Warn("REVIEWER_ASSISTANT_ID is not set, reviews will fail until an assistant is configured")
	}

	// Initialize review service
	repo := repository.NewRepository(database)
	reviewService := services.NewService(repo, store, rev, m, logger, services.Options{
		AssistantName:  cfg.AssistantName,
		Model:          cfg.ReviewerModel,
		GuidelinesPath: cfg.GuidelinesPath,
	})

	// Setup HTTP router
	handler := router.NewRouter(reviewService, m, logger, cfg.MaxFileSize)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
