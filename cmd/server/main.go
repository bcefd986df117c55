package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/config"
	"github.com/oksasatya/geo-region-service/internal/infrastructure/cache"
	"github.com/oksasatya/geo-region-service/internal/infrastructure/events"
	"github.com/oksasatya/geo-region-service/internal/infrastructure/geocoding"
	"github.com/oksasatya/geo-region-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/geo-region-service/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/geo-region-service/internal/interface/http"
	"github.com/oksasatya/geo-region-service/internal/router"
	"github.com/oksasatya/geo-region-service/pkg/helpers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	deps := router.Deps{
		Logger:         logger,
		Hasher:         helpers.BcryptHasher{},
		Tokens:         helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName),
		Geocoder:       geocoding.NewNominatim(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, cfg.GeocoderRatePerSec, cfg.GeocoderTimeout),
		CacheTTL:       cfg.CacheTTL,
		LoginRateLimit: cfg.LoginRateLimit,
		WriteRateLimit: cfg.WriteRateLimit,
	}
	var closers []func()

	// Storage
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		closers = append(closers, pool.Close)
		deps.Users = pginfra.NewUserRepository(pool)
		deps.Regions = pginfra.NewRegionRepository(pool)
		deps.Readiness = append(deps.Readiness, handlers.ReadinessCheck{Name: "postgres", Ping: pool.Ping})
	default:
		logger.Warn("using in-memory storage; data is lost on restart")
		users := memory.NewUserRepository()
		deps.Users = users
		deps.Regions = memory.NewRegionRepository(users)
	}

	// Redis: response cache and login rate limit. Optional.
	if rdb := connectRedis(ctx, cfg, logger); rdb != nil {
		closers = append(closers, func() { _ = rdb.Close() })
		deps.Redis = rdb
		if cfg.CacheEnabled {
			deps.Cache = cache.New(rdb, cfg.AppName+":", logger)
		}
		deps.Readiness = append(deps.Readiness, handlers.ReadinessCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	// Lifecycle events. Optional.
	deps.Events = events.Nop{}
	if cfg.RabbitMQURL != "" {
		pub, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, events disabled", err, nil)
		} else {
			closers = append(closers, pub.Close)
			deps.Events = pub
		}
	}

	r := router.New(deps, router.Options{
		CORSOrigins:       cfg.CORSOrigins(),
		AccessLog:         cfg.HTTPLogEnabled,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		helpers.LogError(logger, "server forced to shutdown", err, nil)
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	logger.Info("server exited properly")
}

func connectRedis(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := helpers.PingRedis(ctx, rdb, 2*time.Second); err != nil {
		helpers.LogWarn(logger, "redis unavailable, cache and rate limit disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
