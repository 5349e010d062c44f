package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oahornets/crosstrack-api/api/swagger"
	"github.com/oahornets/crosstrack-api/internal/handler"
	"github.com/oahornets/crosstrack-api/internal/middleware"
	"github.com/oahornets/crosstrack-api/internal/repository"
	"github.com/oahornets/crosstrack-api/internal/service"
	"github.com/oahornets/crosstrack-api/pkg/cache"
	"github.com/oahornets/crosstrack-api/pkg/config"
	"github.com/oahornets/crosstrack-api/pkg/database"
	"github.com/oahornets/crosstrack-api/pkg/logger"
	corsmiddleware "github.com/oahornets/crosstrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/oahornets/crosstrack-api/pkg/middleware/requestid"
	"github.com/oahornets/crosstrack-api/pkg/storage"
)

// @title CrossTrack API
// @version 1.0.0
// @description REST backend for the Hornets cross country and track program
// @BasePath /api
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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
			redisClient = nil
		}
	}

	fileStore, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	athleteRepo := repository.NewAthleteRepository(db)
	sportRepo := repository.NewSportRepository(db)
	eventRepo := repository.NewEventRepository(db)
	meetRepo := repository.NewMeetRepository(db)
	resultRepo := repository.NewResultRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	teamResultRepo := repository.NewTeamResultRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	dashRepo := repository.NewDashRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr).WithMetrics(metricsSvc)
	defer cacheRepo.Close() //nolint:errcheck

	athleteSvc := service.NewAthleteService(athleteRepo, validate, logr)
	sportSvc := service.NewSportService(sportRepo, validate, logr)
	eventSvc := service.NewEventService(eventRepo, validate, logr)
	meetSvc := service.NewMeetService(meetRepo, validate, logr)
	resultSvc := service.NewResultService(resultRepo, validate, logr)
	recordSvc := service.NewRecordService(recordRepo, cacheRepo, validate, logr)
	rosterSvc := service.NewRosterService(rosterRepo, validate, logr)
	teamResultSvc := service.NewTeamResultService(teamResultRepo, sportRepo, cacheRepo, cfg.Standings.CacheTTL, validate, logr)
	historySvc := service.NewHistoryService(historyRepo, validate, logr)
	dashSvc := service.NewDashService(dashRepo, fileStore, cfg.Uploads.MaxFileSizeBytes, cfg.Uploads.AllowedMIMEs, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		Expiration: cfg.JWT.Expiration,
	})

	if cfg.Bootstrap.Enabled {
		bootstrapSvc := service.NewBootstrapService(userRepo, sportRepo, eventRepo, service.BootstrapConfig{
			AdminUsername: cfg.Bootstrap.AdminUsername,
			AdminPassword: cfg.Bootstrap.AdminPassword,
			AdminEmail:    cfg.Bootstrap.AdminEmail,
			AdminName:     cfg.Bootstrap.AdminName,
		}, logr)
		if err := bootstrapSvc.Run(context.Background()); err != nil {
			logr.Sugar().Fatalw("bootstrap seeding failed", "error", err)
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)

	if cfg.Env != config.EnvProduction {
		r.GET("/metrics", metricsHandler.Prometheus)
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Athletes:    handler.NewAthleteHandler(athleteSvc),
		Sports:      handler.NewSportHandler(sportSvc),
		Events:      handler.NewEventHandler(eventSvc),
		Meets:       handler.NewMeetHandler(meetSvc),
		Results:     handler.NewResultHandler(resultSvc),
		Records:     handler.NewRecordHandler(recordSvc),
		Rosters:     handler.NewRosterHandler(rosterSvc),
		TeamResults: handler.NewTeamResultHandler(teamResultSvc),
		History:     handler.NewHistoryHandler(historySvc),
		Dash:        handler.NewDashHandler(dashSvc),
	}, middleware.JWT(authSvc))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
