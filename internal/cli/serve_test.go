package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ellipsegen/internal/server"
	"github.com/matzehuels/ellipsegen/pkg/cache"
)

func TestOpenCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	c, err := openCache(ctx, serveOpts{cacheBackend: cacheBackendNone})
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	c, err = openCache(ctx, serveOpts{cacheBackend: cacheBackendFile})
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, c)

	_, err = openCache(ctx, serveOpts{cacheBackend: "memcached"})
	assert.ErrorContains(t, err, "unknown cache backend")
}

func TestOpenCacheRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		prefix string
	}{
		{"default prefix", cache.DefaultRedisPrefix},
		{"custom prefix", "staging:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr.FlushAll()
			c, err := openCache(ctx, serveOpts{cacheBackend: cacheBackendRedis, redisAddr: mr.Addr(), redisPrefix: tt.prefix})
			require.NoError(t, err)
			t.Cleanup(func() { _ = c.Close() })

			require.NoError(t, c.Set(ctx, "artifact:abc", []byte("png"), time.Hour))
			assert.True(t, mr.Exists(tt.prefix+"artifact:abc"))
			assert.Len(t, mr.Keys(), 1)
		})
	}
}

func TestServeCommandFlagDefaults(t *testing.T) {
	cmd := New(io.Discard, LogInfo).serveCommand()

	prefix, err := cmd.Flags().GetString("redis-prefix")
	require.NoError(t, err)
	assert.Equal(t, cache.DefaultRedisPrefix, prefix)

	renders, err := cmd.Flags().GetInt("max-renders")
	require.NoError(t, err)
	assert.Equal(t, server.DefaultMaxConcurrentRenders, renders)
}

func TestOpenCacheRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := openCache(context.Background(), serveOpts{cacheBackend: cacheBackendRedis, redisAddr: addr})
	assert.ErrorContains(t, err, "connect to redis")
}
