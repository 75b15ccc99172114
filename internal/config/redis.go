package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient stays nil when REDIS_ADDR is not configured.
var RedisClient *redis.Client

// InitRedis connects to Redis when an address is configured.
func InitRedis(ctx context.Context, cfg Config) error {
	if cfg.RedisAddr == "" {
		logger().Info("REDIS_ADDR is not set, skipping Redis")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	s, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}

	RedisClient = client
	logger().Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.String("ping", s))
	return nil
}
