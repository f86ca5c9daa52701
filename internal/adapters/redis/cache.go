// Package redis caches lint reports in Redis, keyed by the project tree's
// content digest. CI runs over an unchanged tree become a single GET.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/graft/internal/validator"
)

// Cache implements graft.ReportCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached reports.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached reports.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "graft:report:",
		ttl:    24 * time.Hour,
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(digest string) string {
	return c.prefix + digest
}

// Get looks up the report for a tree digest. A missing key is not an error.
func (c *Cache) Get(ctx context.Context, digest string) (*validator.Report, bool, error) {
	val, err := c.client.Get(ctx, c.key(digest)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get from redis: %w", err)
	}

	var report validator.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, true, nil
}

// Put stores a report under its own digest.
func (c *Cache) Put(ctx context.Context, report *validator.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := c.client.Set(ctx, c.key(report.Digest), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
