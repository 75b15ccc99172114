package redis

import (
	"context"
	"time"

	"sociopedia/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const SeedLockKey = "sociopedia:seed:lock"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type SeedLockRedis struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewSeedLockRedis(client *redis.Client, key string, ttl time.Duration) *SeedLockRedis {
	return &SeedLockRedis{
		Client: client,
		Key:    key,
		TTL:    ttl,
	}
}

// Acquire: SET NX با TTL، توکن یکتا برای آزادسازی امن
func (l *SeedLockRedis) Acquire(ctx context.Context) (func(context.Context) error, bool, error) {
	token := uuid.Must(uuid.NewV4()).String()

	ok, err := l.Client.SetNX(ctx, l.Key, token, l.TTL).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	config.Logger.Debug("Seed lock acquired", zap.String("key", l.Key), zap.Duration("ttl", l.TTL))
	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.Client, []string{l.Key}, token).Err()
	}
	return release, true, nil
}
