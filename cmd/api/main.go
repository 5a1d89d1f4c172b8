package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-catalog-api/api/swagger"
	"github.com/noah-isme/course-catalog-api/internal/handler"
	internalmiddleware "github.com/noah-isme/course-catalog-api/internal/middleware"
	"github.com/noah-isme/course-catalog-api/internal/repository"
	"github.com/noah-isme/course-catalog-api/internal/service"
	"github.com/noah-isme/course-catalog-api/pkg/cache"
	"github.com/noah-isme/course-catalog-api/pkg/config"
	"github.com/noah-isme/course-catalog-api/pkg/database"
	"github.com/noah-isme/course-catalog-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-catalog-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-catalog-api/pkg/middleware/requestid"
)

// @title Course Catalog API
// @version 1.0.0
// @description Search, browse and author courses of the e-learning catalog
// @BasePath /
// @schemes http

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

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	cacheRepo := repository.NewCacheRepository(nil, "catalog:")
	cacheEnabled := false
	if cfg.Catalog.CategoryCache {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, filter cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, "catalog:")
			cacheEnabled = true
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CategoryCacheTTL, logr, cacheEnabled)

	courseRepo := repository.NewCourseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	courseSvc := service.NewCourseService(courseRepo, cacheSvc, metricsSvc, validator.New(), logr, service.CourseServiceConfig{
		DefaultLimit: cfg.Catalog.DefaultLimit,
		MaxLimit:     cfg.Catalog.MaxLimit,
	})
	catalogSvc := service.NewCatalogService(categoryRepo, cacheSvc, metricsSvc, cfg.Catalog.CategoryCacheTTL, logr)
	exportSvc := service.NewExportService(courseSvc, logr)

	courseHandler := handler.NewCourseHandler(courseSvc, catalogSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, courseRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	courses := api.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.POST("", courseHandler.Create)
	courses.GET("/filters", courseHandler.Filters)
	courses.GET("/export", courseHandler.Export)
	courses.GET("/:id", courseHandler.Get)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
