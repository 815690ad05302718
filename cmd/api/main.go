// @title Quiz Master API
// @version 1.0
// @description Quiz-taking platform with administrator and learner roles.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-master/internal/adapter"
	"quiz-master/internal/cache"
	"quiz-master/internal/config"
	"quiz-master/internal/database"
	"quiz-master/internal/domain"
	"quiz-master/internal/handler"
	"quiz-master/internal/logger"
	"quiz-master/internal/metrics"
	"quiz-master/internal/middleware"
	"quiz-master/internal/repository"
	"quiz-master/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	metrics.Init()

	// Database
	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	dialect := repository.Dialect(cfg.DB.Driver)

	// Redis is optional: without it every cached read goes straight to the store.
	var cacheStore domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, response cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheStore = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	}

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db, dialect)
	subjectRepository := repository.NewSQLXSubjectRepository(db, dialect)
	quizRepository := repository.NewSQLXQuizRepository(db, dialect)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db, dialect)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	responseCache := service.NewResponseCache(cacheStore, cfg.Cache.DefaultTTL)
	invalidator := service.NewInvalidationCoordinator(responseCache)

	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	catalogService := service.NewCatalogService(subjectRepository, quizRepository, responseCache)
	attemptService := service.NewAttemptService(userRepository, quizRepository, attemptRepository, txManager, invalidator)
	statsService := service.NewStatsService(userRepository, attemptRepository, responseCache)
	adminService := service.NewAdminService(userRepository, subjectRepository, quizRepository, txManager, responseCache, invalidator)
	appLogger.Info("Services initialized")

	// Submission throttle
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	submitLimiter := middleware.NewRateLimiter(cfg.RateLimit.SubmissionsPerMinute, cfg.RateLimit.Burst)
	go submitLimiter.Run(limiterCtx)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	app.Get("/health", handler.NewHealthHandler(db, cacheStore).Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.RegisterRoutes(app, handler.Router{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(catalogService, attemptService, statsService),
		Admin:       handler.NewAdminHandler(adminService, statsService),
		Protected:   middleware.Protected(authService, userRepository),
		SubmitLimit: submitLimiter.Handler(),
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("db_driver", cfg.DB.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
