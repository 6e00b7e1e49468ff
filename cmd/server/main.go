package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	caseworkapp "github.com/funeralworks/backend/internal/application/casework"
	"github.com/funeralworks/backend/internal/infrastructure/config"
	"github.com/funeralworks/backend/internal/infrastructure/logger"
	"github.com/funeralworks/backend/internal/infrastructure/persistence"
	"github.com/funeralworks/backend/internal/infrastructure/storage"
	"github.com/funeralworks/backend/internal/interfaces/http/handler"
	"github.com/funeralworks/backend/internal/interfaces/http/middleware"
	"github.com/funeralworks/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting funeral case backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	caseRepo := persistence.NewGormCaseRecordRepository(db.DB)
	documentRepo := persistence.NewGormCaseDocumentRepository(db.DB)
	historyRepo := persistence.NewGormStatusHistoryRepository(db.DB)

	// Initialize document file storage. Without credentials the stub
	// keeps the attachment flow working for local development.
	var objectStorage caseworkapp.ObjectStorageService
	if cfg.Storage.AccessKey != "" && cfg.Storage.SecretKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Storage credentials not configured, using stub object storage")
	}

	// Initialize application services
	caseService := caseworkapp.NewCaseService(caseRepo)
	workflowService := caseworkapp.NewWorkflowService(caseRepo, documentRepo, historyRepo)
	documentService := caseworkapp.NewDocumentService(documentRepo, caseRepo, objectStorage)
	documentService.SetConfig(caseworkapp.DocumentServiceConfig{
		UploadURLExpiry:   cfg.Storage.UploadURLExpiry,
		DownloadURLExpiry: cfg.Storage.DownloadURLExpiry,
	})

	// Initialize handlers
	caseHandler := handler.NewCaseHandler(caseService, workflowService)
	documentHandler := handler.NewDocumentHandler(documentService)
	statusHandler := handler.NewStatusHandler()
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/healthz", healthHandler(db))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	statusRoutes := router.NewDomainGroup("statuses", "/statuses")
	statusRoutes.GET("", statusHandler.List)
	r.Register(statusRoutes)

	caseRoutes := router.NewDomainGroup("cases", "/cases")
	caseRoutes.POST("", caseHandler.Create)
	caseRoutes.GET("", caseHandler.List)
	caseRoutes.GET("/number/:record_number", caseHandler.GetByRecordNumber)
	caseRoutes.GET("/:id", caseHandler.GetByID)
	caseRoutes.PUT("/:id", caseHandler.Update)
	caseRoutes.POST("/:id/status", caseHandler.Transition)
	caseRoutes.GET("/:id/history", caseHandler.History)
	caseRoutes.POST("/:id/documents", documentHandler.Create)
	caseRoutes.POST("/:id/documents/:doc_id/confirm", documentHandler.Confirm)
	caseRoutes.GET("/:id/documents", documentHandler.List)
	caseRoutes.GET("/:id/documents/:doc_id/download", documentHandler.GetDownloadURL)
	caseRoutes.DELETE("/:id/documents/:doc_id", documentHandler.Delete)
	r.Register(caseRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the health check endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
