// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"venue-booking/cmd"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/notify"
	"venue-booking/internal/usecase"
	"venue-booking/internal/wire"
	"venue-booking/pkg/cache"
	"venue-booking/pkg/database"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.Storage.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	var repos *repository.Repository
	switch config.Storage.Driver {
	case "memory":
		logger.Warn("Using in-memory storage; data is lost on restart")
		repos = repository.NewMemoryRepository(logger)
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")

		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		repos = repository.NewRepository(db, logger)
	}

	// Optional infrastructure
	infra := wire.Infra{Cache: cache.NewNoop()}

	var redisClient *redis.Client
	if config.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", config.Redis.Addr))
		}
		defer redisClient.Close()
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		infra.Cache = cache.NewRedisCache(redisClient, config.App.Name, config.Cache.TTL, logger)
	}

	infra.RateLimitStore, err = middleware.NewRateLimitStore(redisClient, config.App.Name+":ratelimit")
	if err != nil {
		logger.Fatal("Failed to create rate limit store", zap.Error(err))
	}

	var notifiers notify.Multi
	if config.AMQP.URL != "" {
		publisher := notify.NewAMQPPublisher(config.AMQP, logger)
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}
	if config.Email.Enabled() {
		notifiers = append(notifiers, notify.NewMailer(config.Email, logger))
	}
	if len(notifiers) > 0 {
		async := notify.NewAsync(notifiers, notify.DefaultQueueSize, logger)
		defer func() {
			drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = async.Close(drainCtx)
		}()
		infra.Notifier = async
	}
	logger.Info("Notifications configured",
		zap.Bool("amqp", config.AMQP.URL != ""),
		zap.Bool("email", config.Email.Enabled()),
	)

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, infra, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if config.Storage.SeedVenues {
		seedVenues(ctx, app.Service.Venue, logger)
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func seedVenues(ctx context.Context, venues usecase.VenueService, logger *zap.Logger) {
	n, err := venues.SeedDefaults(ctx)
	if err != nil {
		logger.Fatal("Failed to seed venues", zap.Error(err))
	}
	if n > 0 {
		logger.Info("Default venues seeded", zap.Int("count", n))
	}
}
