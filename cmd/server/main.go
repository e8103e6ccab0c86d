package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medagent/backend/internal/models"
	"medagent/backend/pkg/config"
	"medagent/backend/pkg/di"
	"medagent/backend/pkg/logger"
	"medagent/backend/pkg/observability"
	"medagent/backend/pkg/router"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := config.New()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting application", "version", os.Getenv("APP_VERSION"))

	// Tracing and metrics
	shutdownTracing := observability.SetupTracing("medagent-backend")
	defer shutdownTracing()
	observability.SetupPrometheusMetrics(":2112")

	// Initialize database
	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.LogError(err, "Failed to close database")
		}
	}()

	// Auto-migrate the schema
	if err := db.AutoMigrate(&models.Session{}, &models.Profile{}, &models.Message{}); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Index for the per-turn history fetch
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_session_ts ON messages(session_id, timestamp)").Error; err != nil {
		log.LogError(err, "Failed to create message index", "index", "idx_messages_session_ts")
	}

	// Initialize dependency injection container
	diConfig := di.DefaultConfig()
	diConfig.LoggerConfig = logConfig
	diConfig.ModelConfig.Model = cfg.Model.Name
	diConfig.ModelConfig.MaxTokens = cfg.Model.MaxTokens
	diConfig.ModelConfig.Temperature = float32(cfg.Model.Temperature)

	container, err := di.New(db, diConfig)
	if err != nil {
		log.LogError(err, "Failed to initialize dependency container")
		os.Exit(1)
	}

	// Initialize and setup router
	r := router.New(container)
	r.SetupRoutes()

	// Add OpenAPI validation if schema file is available
	schemaPath := os.Getenv("OPENAPI_SCHEMA_PATH")
	if schemaPath != "" {
		r.AddOpenAPIValidation(schemaPath)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
