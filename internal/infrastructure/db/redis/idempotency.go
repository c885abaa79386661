package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client idempotency keys to prediction ids.
// Key format: idempotency:predict:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore wraps client. A non-positive ttl uses defaultIdempotencyTTL.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup reports the prediction stored under key.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: corrupt value %q: %w", val, err)
	}
	return id, true, nil
}

// Remember stores the prediction id under key unless the key is already
// taken; the first writer wins.
func (s *IdempotencyStore) Remember(ctx context.Context, key string, predictionID int64) error {
	if err := s.client.SetNX(ctx, s.key(key), predictionID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idempotency:predict:" + key
}
