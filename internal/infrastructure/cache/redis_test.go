package cache

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"resume-analyzer/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

func TestRedis_NotConfiguredBypasses(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, discard)
	ctx := context.Background()

	assert.False(t, r.Available())
	assert.True(t, errors.Is(r.Ping(ctx), ErrUnavailable))
	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, r.Available())
}

func TestRedis_UnreachableServerReportsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	r := NewRedisWithClient(client, 0, discard)
	defer r.Close()

	_, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.Error(t, err)
	assert.Error(t, r.SetJSON(context.Background(), "k", 1, 0))
	assert.Equal(t, defaultTTL, r.ttl)
}
