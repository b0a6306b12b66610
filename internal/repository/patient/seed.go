package patient

import (
	"context"
	"fmt"
	"time"
)

// writer is the consumer interface for Seed (ISP).
type writer interface {
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Seed validates data as a patient collection and stores it under key.
// ttl <= 0 stores it without expiry. It returns the number of records written.
func Seed(ctx context.Context, w writer, key string, data []byte, ttl time.Duration) (int, error) {
	if key == "" {
		key = DefaultRedisKey
	}
	records, err := Decode(data)
	if err != nil {
		return 0, err
	}

	if ttl > 0 {
		err = w.SetWithTTL(ctx, key, data, ttl)
	} else {
		err = w.Set(ctx, key, data)
	}
	if err != nil {
		return 0, fmt.Errorf("store %s: %w", key, err)
	}
	return len(records), nil
}
