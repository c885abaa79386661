package ports

import "context"

// IdempotencyStore remembers which prediction a client key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (predictionID int64, found bool, err error)
	Remember(ctx context.Context, key string, predictionID int64) error
}
