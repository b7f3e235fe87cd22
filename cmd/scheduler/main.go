package main

import (
	"context"
	"crypto/tls"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecopro_backend/internal/adapters"
	"ecopro_backend/internal/catalog"
	"ecopro_backend/internal/delegates"
	"ecopro_backend/internal/events"
	"ecopro_backend/internal/projects"
	"ecopro_backend/internal/scheduler"
	"ecopro_backend/internal/valorisation"
	"ecopro_backend/platform/config"
	"ecopro_backend/platform/db"
	"ecopro_backend/platform/logger"
	"ecopro_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	redisClient := initRedis(cfg, log)
	if redisClient == nil {
		panic("REDIS_URL is required for the scheduler")
	}
	defer func() { _ = redisClient.Close() }()

	// Worker-side valorisation wiring (no HTTP handlers required).
	catalogModule := catalog.NewModule(pool, nil, val, log)
	projectsModule := projects.NewModule(pool, nil, val, log)
	delegatesModule := delegates.NewModule(pool, nil, val, log)

	valorisationModule := valorisation.NewModule(valorisation.ModuleParams{
		Pool:      pool,
		Redis:     redisClient,
		Bus:       eventBus,
		Products:  adapters.NewCatalogReader(catalogModule.Repository()),
		Projects:  adapters.NewProjectsReader(projectsModule.Repository()),
		Delegates: adapters.NewDelegatesReader(delegatesModule.Repository()),
		Config:    cfg,
		Validator: val,
		Logger:    log,
	})

	dispatcher, err := scheduler.NewEnergySnapshotDispatcher(cfg, log)
	if err != nil {
		log.Error("failed to initialize snapshot dispatcher", "error", err)
		panic("failed to initialize snapshot dispatcher: " + err.Error())
	}
	defer func() { _ = dispatcher.Close() }()
	go dispatcher.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}
	worker.SetSnapshotRefresher(valorisationModule.Service())

	worker.Run(ctx)
}

func initRedis(cfg config.CacheConfig, log *logger.Logger) redis.UniversalClient {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		log.Warn("REDIS_URL not configured")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("failed to parse redis url", "error", err)
		return nil
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}

	return redis.NewClient(opt)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
