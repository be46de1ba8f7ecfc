package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/grocerly/backend/config"
	"github.com/pageza/grocerly/backend/internal/api"
	"github.com/pageza/grocerly/backend/internal/database"
	"github.com/pageza/grocerly/backend/internal/lock"
	"github.com/pageza/grocerly/backend/internal/logging"
	"github.com/pageza/grocerly/backend/internal/middleware"
	"github.com/pageza/grocerly/backend/internal/router"
	"github.com/pageza/grocerly/backend/internal/server"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	checks := map[string]api.Pinger{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, logger)
		switch {
		case err != nil && cfg.LockBackend == "redis":
			return err
		case err != nil:
			// rate limiting is optional, the API keeps serving without it
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			redisClient = nil
		default:
			defer redisClient.Close()
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	var locker lock.Locker = lock.NewLocal()
	if cfg.LockBackend == "redis" {
		locker = lock.NewRedis(redisClient, lock.RedisConfig{TTL: cfg.LockTTL, Wait: cfg.LockWait}, logger.Named("lock"))
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil && cfg.RateLimitLimit > 0 {
		limiter = middleware.NewGenerationRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitLimit, logger.Named("ratelimit"))
	}

	uow := store.NewUnitOfWork(db, locker)
	opts := []service.Option{service.WithLogger(logger)}

	handler := router.SetupRouter(router.Handlers{
		Grocery:      api.NewGroceryHandler(service.NewGroceryService(uow, opts...), limiter),
		Recipes:      api.NewRecipeHandler(service.NewRecipeService(uow, opts...)),
		Ingredients:  api.NewIngredientHandler(service.NewIngredientService(uow, opts...)),
		MealPlans:    api.NewMealPlanHandler(service.NewMealPlanService(uow, opts...)),
		GroceryLists: api.NewGroceryListHandler(service.NewGroceryListService(uow, opts...), limiter),
		Health:       api.NewHealthHandler(checks),
	}, cfg.CORSAllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.ServerHost, cfg.ServerPort, handler, logger).Run(ctx)
}
