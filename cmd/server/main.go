package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vuidokan-site/config"
	_ "vuidokan-site/docs" // Important for Swagger
	"vuidokan-site/internal/delivery/http/site"
	"vuidokan-site/internal/repository/content"
	"vuidokan-site/internal/repository/logrecord"
	"vuidokan-site/internal/repository/postgres"
	"vuidokan-site/internal/usecase"
	"vuidokan-site/pkg/database"
	"vuidokan-site/pkg/email"
	"vuidokan-site/pkg/logger"
	"vuidokan-site/pkg/redis"
	"vuidokan-site/pkg/security"
	"vuidokan-site/pkg/validation"
	"vuidokan-site/web"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// @title           VUIDOKAN Site API
// @version         1.0
// @description     Contact and newsletter endpoints of the VUIDOKAN marketing site.
// @host            localhost:3000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting VUIDOKAN site", "port", cfg.Port)

	environment := "development"
	if config.IsProduction() {
		environment = "production"
		gin.SetMode(gin.ReleaseMode)
	}
	secLog := security.InitSecurityLogger("vuidokan-site", environment)
	defer secLog.Sync()

	ctx := context.Background()
	checks := map[string]usecase.HealthCheck{}

	// 3. Setup Redis (rate limiting falls back to memory without it)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
			checks["redis"] = redis.HealthCheck
		}
	}

	// 4. Setup Recorders
	sinks := []logrecord.Sink{logrecord.NewRecorder(logger.Log)}
	var dbPool *pgxpool.Pool
	if cfg.DBUrl != "" {
		dbPool, err = database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		submissionRepo := postgres.NewSubmissionRepository(dbPool)
		if err := submissionRepo.Migrate(ctx); err != nil {
			logger.Log.Error("Failed to migrate submission tables", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, submissionRepo)
		checks["database"] = dbPool.Ping
	}
	recorder := logrecord.NewFanout(sinks...)

	newsRepo, err := content.NewNewsRepository(web.Content(), web.NewsCatalog)
	if err != nil {
		logger.Log.Error("Failed to load news catalog", "error", err)
		os.Exit(1)
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact requests are only recorded")
	}

	// 6. Setup UseCases
	validate := validation.New()
	contactUC := usecase.NewContactUsecase(recorder, emailService, validate, secLog)
	newsletterUC := usecase.NewNewsletterUsecase(recorder, validate, secLog)
	newsUC := usecase.NewNewsUsecase(newsRepo)
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router, err := site.NewRouter(site.RouterDeps{
		ContactUC:      contactUC,
		NewsletterUC:   newsletterUC,
		NewsUC:         newsUC,
		HealthUC:       healthUC,
		Config:         cfg,
		SecurityLogger: secLog,
	})
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
