package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"xflyve-service/internal/auth"
	"xflyve-service/internal/cache"
	"xflyve-service/internal/config"
	"xflyve-service/internal/db"
	httphandler "xflyve-service/internal/http"
	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/logger"
	"xflyve-service/internal/repository"
	"xflyve-service/internal/service"
	"xflyve-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	blobs, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to init blob storage")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	assignmentCache := cache.NewAssignmentCache(redisClient, 0)

	driverRepo := repository.NewDriverRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	jobRepo := repository.NewJobRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	permanentRepo := repository.NewPermanentAssignmentRepository(database)
	workLogRepo := repository.NewWorkLogRepository(database)
	podRepo := repository.NewPodRepository(database)
	diaryRepo := repository.NewDiaryRepository(database)

	tokenManager := auth.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTokenTTL)

	authService := service.NewAuthService(driverRepo, tokenManager)
	driverService := service.NewDriverService(driverRepo, truckRepo, jobRepo, workLogRepo)
	truckService := service.NewTruckService(truckRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, permanentRepo, driverRepo, truckRepo, assignmentCache)
	jobService := service.NewJobService(jobRepo, driverRepo)
	workLogService := service.NewWorkLogService(workLogRepo)
	documentService := service.NewDocumentService(podRepo, diaryRepo, jobRepo, blobs, appLogger)

	handler := httphandler.NewHandler(
		authService,
		driverService,
		truckService,
		assignmentService,
		jobService,
		workLogService,
		documentService,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenManager)
	router := httphandler.NewRouter(handler, authMiddleware, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("storage", cfg.Storage.Backend).Msg("starting xflyve service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
