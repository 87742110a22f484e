package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/sitehost/internal/cache"
	"github.com/nikhilbhutani/sitehost/internal/config"
	"github.com/nikhilbhutani/sitehost/internal/queue"
	"github.com/nikhilbhutani/sitehost/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: newAsynqLogger(logger),
	})

	// The worker deletes from the shared redis tier only; API instances drop
	// their local copies when l1 entries expire.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	siteCache := cache.NewContextCache(cache.NewRedisStore(rdb), cache.Policy{
		Live:     cfg.Cache.LiveTTL,
		Preview:  cfg.Cache.PreviewTTL,
		Platform: cfg.Cache.PlatformTTL,
	}, logger)

	registry := queue.NewHandlersRegistry(logger)
	invalidateWorker := workers.NewCacheInvalidateWorker(siteCache, logger)
	registry.Register(queue.TypeCacheInvalidate, asynq.HandlerFunc(invalidateWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 4)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
