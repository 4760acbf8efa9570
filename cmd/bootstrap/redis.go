package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/cache"
	"shareit/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewIdempotencyStore,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// idempotency degrades to a 500 per request; the API still serves reads
			if err := cache.Ping(ctx, client); err != nil {
				slog.Warn("redis is unreachable at startup", "address", cfg.Redis.Address, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewIdempotencyStore(client *redis.Client, cfg config.Config) *cache.IdempotencyStore {
	return cache.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
}
