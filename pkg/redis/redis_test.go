package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFromUniversal(rdb, zap.NewNop()), mr
}

func TestBlacklist(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	ok, err := c.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.BlacklistToken(ctx, "jti-1", time.Minute))
	ok, err = c.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = c.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with the token")
}

func TestBlacklist_ExpiredTokenIsNoop(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.BlacklistToken(ctx, "jti-2", 0))
	ok, err := c.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := c.CheckRateLimit(ctx, "login:10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "hit %d should be allowed", i+1)
	}

	allowed, err := c.CheckRateLimit(ctx, "login:10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "fourth hit should be throttled")

	allowed, err = c.CheckRateLimit(ctx, "login:10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are independent")
}
