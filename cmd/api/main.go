package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"rgResume/internal/api"
	"rgResume/internal/config"
	"rgResume/internal/metrics"
	"rgResume/internal/session"
	"rgResume/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	store := session.NewStore()
	metrics.RegisterSessionGauge(store.Len)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("close asynq client failed", slog.Any("error", err))
		}
	}()

	go sweepLoop(store, storageClient, cfg.API.SessionTTL, logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, store, asynqClient, redisClient, logger, cfg.API.InternalSecret, nil)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

// sweepLoop 周期回收闲置会话，并顺带清理它们的导出产物。
func sweepLoop(store *session.Store, storageClient *storage.Client, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		removed := store.Sweep(ttl)
		if len(removed) == 0 {
			continue
		}
		logger.Info("idle sessions swept", slog.Int("count", len(removed)))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		for _, id := range removed {
			if err := storageClient.DeletePrefix(ctx, fmt.Sprintf("exports/%s/", id)); err != nil {
				logger.Warn("cleanup exported artifacts failed",
					slog.String("session_id", id),
					slog.Any("error", err),
				)
			}
		}
		cancel()
	}
}
