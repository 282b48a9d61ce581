package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lesson-ledger-api/api/swagger"
	"github.com/noah-isme/lesson-ledger-api/internal/handler"
	"github.com/noah-isme/lesson-ledger-api/internal/middleware"
	"github.com/noah-isme/lesson-ledger-api/internal/repository"
	"github.com/noah-isme/lesson-ledger-api/internal/service"
	"github.com/noah-isme/lesson-ledger-api/pkg/cache"
	"github.com/noah-isme/lesson-ledger-api/pkg/config"
	"github.com/noah-isme/lesson-ledger-api/pkg/database"
	"github.com/noah-isme/lesson-ledger-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lesson-ledger-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lesson-ledger-api/pkg/middleware/requestid"
)

// @title Lesson Ledger API
// @version 1.0.0
// @description Lesson scheduling queries and reports
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Cache.SummaryEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, summary cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metricsSvc := service.NewMetricsService()
	storeCfg := repository.StoreConfig{Timeout: cfg.Lessons.StoreTimeout, Metrics: metricsSvc}

	lessonRepo := repository.NewLessonRepository(db, storeCfg)
	teacherRepo := repository.NewTeacherRepository(db, storeCfg)
	studentRepo := repository.NewStudentRepository(db, storeCfg)
	cacheRepo := repository.NewCacheRepository(redisClient, "lesson-ledger", logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.SummaryTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	lessonSvc := service.NewLessonService(service.LessonServiceParams{
		Lessons:  lessonRepo,
		Teachers: teacherRepo,
		Students: studentRepo,
		Reports: service.NewReportEngine(service.ReportConfig{
			DefaultLessonHours: cfg.Reports.DefaultLessonHours,
			HourWeights:        cfg.Reports.HourWeights,
			UncategorizedLabel: cfg.Reports.UncategorizedLabel,
		}),
		Cache:      cacheSvc,
		Validator:  validator.New(),
		Logger:     logr,
		WindowDays: cfg.Lessons.DefaultWindowDays,
		SummaryTTL: cfg.Cache.SummaryTTL,
	})
	exportSvc := service.NewExportService(lessonSvc, logr)

	lessonHandler := handler.NewLessonHandler(lessonSvc, exportSvc)
	healthHandler := handler.NewHealthHandler(metricsSvc, handler.ReadinessChecks{
		"postgres": lessonRepo,
		"redis":    cacheRepo,
	}, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", healthHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	lessonHandler.Register(api.Group("/lessons", middleware.JWT(authSvc)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
