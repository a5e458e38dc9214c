package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/docflow_app/internal/adapters/filestorage/local"
	s3storage "github.com/SscSPs/docflow_app/internal/adapters/filestorage/s3"
	"github.com/SscSPs/docflow_app/internal/core/ports/storage"
	"github.com/SscSPs/docflow_app/internal/core/services"
	"github.com/SscSPs/docflow_app/internal/handlers"
	"github.com/SscSPs/docflow_app/internal/jobs"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/SscSPs/docflow_app/internal/platform/config"
	"github.com/SscSPs/docflow_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/docflow_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Docflow Backend API
// @version 1.0
// @description Document registration, routing and audit backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	files, err := newFileStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize file storage", slog.String("backend", cfg.FileStorageBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), files)

	digest := jobs.NewReminderDigest(serviceContainer.Assistant, logger.With(slog.String("job", "reminder_digest")), cfg.Location())
	if err := digest.Start(cfg.ReminderDigestCron); err != nil {
		logger.Error("Failed to schedule reminder digest", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer digest.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newFileStorage picks the configured file storage backend.
func newFileStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	if cfg.FileStorageBackend == config.StorageBackendS3 {
		return s3storage.NewS3FileStorage(ctx, s3storage.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKeyID,
			SecretKey: cfg.S3SecretAccessKey,
			Prefix:    cfg.FileStorageRoot,
		})
	}
	return local.NewLocalFileStorage(cfg.FileStorageRoot)
}
