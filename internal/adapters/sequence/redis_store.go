package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/platform/obs"
)

// DefaultTTL bounds how long an idle session counter survives in Redis.
const DefaultTTL = time.Hour

// RedisStore shares session counters across service replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sequenceKey(session string) string {
	return "route:seq:" + session
}

func (s *RedisStore) Next(ctx context.Context, session string) (_ uint64, err error) {
	defer obs.Time(ctx, "sequence.redis.Next")(&err)

	key := sequenceKey(session)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("sequence next %q: %w", session, err)
	}

	return uint64(incr.Val()), nil
}

func (s *RedisStore) Latest(ctx context.Context, session string) (uint64, error) {
	n, err := s.client.Get(ctx, sequenceKey(session)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sequence latest %q: %w", session, err)
	}
	return n, nil
}
