package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirewire/matchengine/internal/domain/model"
	"github.com/hirewire/matchengine/pkg/logger"
	"github.com/hirewire/matchengine/pkg/metrics"
)

// activeJobsKey holds the cached active posting pool as a JSON array.
const activeJobsKey = "matchd:jobs:active"

const defaultJobCacheTTL = 5 * time.Minute

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// CachedJobSource wraps a JobSource with a read-through Redis cache for the
// active posting pool. The pool is refetched per batch run and per retrieval
// request otherwise, so caching it is the single highest-leverage read.
// Cache failures degrade to the underlying source and are never surfaced.
type CachedJobSource struct {
	inner JobSource
	rdb   *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

// CacheOption applies a configuration option to the CachedJobSource.
type CacheOption func(*CachedJobSource)

// WithTTL sets the active-pool cache lifetime.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedJobSource) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets a custom logger.
func WithCacheLogger(log logger.Logger) CacheOption {
	return func(c *CachedJobSource) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCachedJobSource wraps inner with the Redis cache.
func NewCachedJobSource(inner JobSource, rdb *redis.Client, opts ...CacheOption) *CachedJobSource {
	c := &CachedJobSource{
		inner: inner,
		rdb:   rdb,
		ttl:   defaultJobCacheTTL,
		log:   logger.Get().Named("jobcache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Job passes through; single postings are not worth caching.
func (c *CachedJobSource) Job(ctx context.Context, jobID string) (model.JobPosting, error) {
	return c.inner.Job(ctx, jobID)
}

// ActiveJobs returns the cached pool when fresh, otherwise refills from the
// underlying source.
func (c *CachedJobSource) ActiveJobs(ctx context.Context) ([]model.JobPosting, error) {
	raw, err := c.rdb.Get(ctx, activeJobsKey).Bytes()
	if err == nil {
		var jobs []model.JobPosting
		if jsonErr := json.Unmarshal(raw, &jobs); jsonErr == nil {
			metrics.RecordJobCacheHit()
			return jobs, nil
		}
		// Corrupt payload: fall through to a refill.
		c.log.Warn(ctx, "discarding corrupt active-jobs cache entry")
	} else if err != redis.Nil {
		c.log.Warn(ctx, "active-jobs cache read failed", logger.Error(err))
	}

	metrics.RecordJobCacheMiss()
	jobs, err := c.inner.ActiveJobs(ctx)
	if err != nil {
		return nil, err
	}

	if raw, jsonErr := json.Marshal(jobs); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, activeJobsKey, raw, c.ttl).Err(); setErr != nil {
			c.log.Warn(ctx, "active-jobs cache write failed", logger.Error(setErr))
		}
	}
	return jobs, nil
}

// Invalidate drops the cached pool, for callers that know postings changed.
func (c *CachedJobSource) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, activeJobsKey).Err(); err != nil {
		return fmt.Errorf("invalidate active-jobs cache: %w", err)
	}
	return nil
}
