package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/advotrack/roster-api/api/swagger"
	"github.com/advotrack/roster-api/internal/datatable"
	"github.com/advotrack/roster-api/internal/handler"
	"github.com/advotrack/roster-api/internal/middleware"
	"github.com/advotrack/roster-api/internal/repository"
	"github.com/advotrack/roster-api/internal/service"
	"github.com/advotrack/roster-api/pkg/cache"
	"github.com/advotrack/roster-api/pkg/config"
	"github.com/advotrack/roster-api/pkg/database"
	"github.com/advotrack/roster-api/pkg/logger"
	corsmiddleware "github.com/advotrack/roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/advotrack/roster-api/pkg/middleware/requestid"
)

// @title Advotrack Roster API
// @version 1.0.0
// @description Volunteer roster datatable service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Datatable.FilterOptionsCache {
		redisClient, redisErr := cache.NewRedis(cfg.Redis)
		if redisErr != nil {
			logr.Sugar().Warnw("redis unavailable, filter options cache disabled", "error", redisErr)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close()
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Datatable.FilterOptionsTTL, logr, cacheRepo != nil)

	engineCfg := datatable.Config{
		ContactWindow: time.Duration(cfg.Datatable.ContactWindowDays) * 24 * time.Hour,
	}

	volunteerRepo := repository.NewVolunteerRepository(db)
	supervisorRepo := repository.NewSupervisorRepository(db)

	datatableSvc := service.NewDatatableService(volunteerRepo, engineCfg, metricsSvc, nil, logr)
	exportSvc := service.NewExportService(volunteerRepo, engineCfg, service.ExportConfig{MaxRows: cfg.Export.MaxRows}, metricsSvc, nil, logr, nil, nil)
	optionsSvc := service.NewFilterOptionsService(supervisorRepo, cacheSvc, metricsSvc, cfg.Datatable.FilterOptionsTTL, logr)

	volunteerHandler := handler.NewVolunteerHandler(datatableSvc, exportSvc)
	optionsHandler := handler.NewFilterOptionsHandler(optionsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	volunteers := api.Group("/organizations/:orgId/volunteers")
	volunteers.POST("/datatable", volunteerHandler.Datatable)
	volunteers.POST("/export", volunteerHandler.Export)
	volunteers.GET("/filter-options", middleware.WithResponseMeta(), optionsHandler.Get)
	api.GET("/system/metrics", metricsHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
