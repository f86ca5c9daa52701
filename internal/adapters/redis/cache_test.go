package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/adapters/redis"
	"github.com/aretw0/graft/internal/validator"
)

func newCache(t *testing.T, opts ...redis.Option) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	cache := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	report := &validator.Report{
		Digest: "deadbeef",
		Units:  2,
		Findings: []validator.Finding{
			{Path: "units/Panel", Code: "missing_default", Severity: validator.SeverityError, Message: "optional input has no default"},
		},
		CheckedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, cache.Put(ctx, report))

	got, hit, err := cache.Get(ctx, "deadbeef")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, report.Digest, got.Digest)
	assert.Equal(t, report.Findings, got.Findings)
}

func TestCache_MissIsNotAnError(t *testing.T) {
	cache, _ := newCache(t)

	_, hit, err := cache.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_TTLExpires(t *testing.T) {
	cache, mr := newCache(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, &validator.Report{Digest: "d1"}))
	mr.FastForward(2 * time.Minute)

	_, hit, err := cache.Get(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_PrefixIsolation(t *testing.T) {
	cache, mr := newCache(t, redis.WithPrefix("ci:report:"))

	require.NoError(t, cache.Put(context.Background(), &validator.Report{Digest: "d2"}))
	assert.True(t, mr.Exists("ci:report:d2"))
}
