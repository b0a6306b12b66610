package patient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
)

// DefaultRedisKey holds the collection document when no key is configured.
const DefaultRedisKey = "patientdir:patients"

// store is the consumer interface for the Redis source (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Ping(ctx context.Context) error
}

type redisState struct {
	records  []dompatient.Patient
	sum      uint64
	loadedAt time.Time
}

// RedisSource serves the collection stored as one JSON document under a key.
// The decoded snapshot is cached for the refresh interval; an unchanged
// document is not decoded again.
type RedisSource struct {
	store   store
	key     string
	refresh time.Duration
	metrics Instruments
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex // serializes refreshes
	state atomic.Pointer[redisState]
}

// NewRedisSource creates a Redis-backed source. refresh <= 0 re-reads the key on every Snapshot.
func NewRedisSource(
	s store, key string, refresh time.Duration,
	metrics Instruments, logger *zap.Logger,
) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSource{
		store:   s,
		key:     key,
		refresh: refresh,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Key returns the Redis key the document is read from.
func (s *RedisSource) Key() string { return s.key }

// Snapshot returns the cached collection, refreshing it when stale. A failed
// refresh keeps serving the previous snapshot; a failed first load is an error.
func (s *RedisSource) Snapshot(ctx context.Context) ([]dompatient.Patient, error) {
	if st := s.state.Load(); s.fresh(st) {
		return st.records, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Load()
	if s.fresh(prev) {
		return prev.records, nil
	}

	records, sum, err := s.fetch(ctx, prev)
	if err != nil {
		if prev == nil {
			return nil, err
		}
		s.logger.Warn("Refresh failed, serving previous snapshot",
			zap.String("key", s.key),
			zap.Error(err),
		)
		s.state.Store(&redisState{records: prev.records, sum: prev.sum, loadedAt: s.now()})
		return prev.records, nil
	}

	s.state.Store(&redisState{records: records, sum: sum, loadedAt: s.now()})
	return records, nil
}

func (s *RedisSource) fresh(st *redisState) bool {
	return st != nil && s.refresh > 0 && s.now().Sub(st.loadedAt) < s.refresh
}

func (s *RedisSource) fetch(ctx context.Context, prev *redisState) ([]dompatient.Patient, uint64, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.metrics.observe(DriverRedis, 0, err)
		return nil, 0, fmt.Errorf("get %s: %w", s.key, err)
	}

	sum := xxhash.Sum64(data)
	if prev != nil && prev.sum == sum {
		return prev.records, sum, nil
	}

	records, err := Decode(data)
	s.metrics.observe(DriverRedis, len(records), err)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", s.key, err)
	}

	s.logger.Info("Patient collection loaded",
		zap.String("key", s.key),
		zap.Int("records", len(records)),
	)
	return records, sum, nil
}

// Ping checks the database behind the source.
func (s *RedisSource) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
