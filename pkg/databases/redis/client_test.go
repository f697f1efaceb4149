package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T, prefix string) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisClient(context.Background(), mr.Addr(), "", 0, prefix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c, mr
}

func TestRedisClient_GetSetRemove(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{name: "no prefix", prefix: ""},
		{name: "with prefix", prefix: "localauth:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := setupClient(t, tt.prefix)
			ctx := context.Background()

			_, ok, err := c.Get(ctx, "users")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Set(ctx, "users", `[]`))
			v, ok, err := c.Get(ctx, "users")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v)

			raw, err := mr.Get(tt.prefix + "users")
			require.NoError(t, err)
			assert.Equal(t, `[]`, raw)

			require.NoError(t, c.Remove(ctx, "users"))
			_, ok, err = c.Get(ctx, "users")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisClient_Overwrite(t *testing.T) {
	c, _ := setupClient(t, "")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "currentUser", `{"username":"a"}`))
	require.NoError(t, c.Set(ctx, "currentUser", `{"username":"b"}`))

	v, ok, err := c.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"username":"b"}`, v)
}

func TestRedisClient_ServerDown(t *testing.T) {
	c, mr := setupClient(t, "")
	mr.Close()

	_, _, err := c.Get(context.Background(), "users")
	assert.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0, "")
	assert.Error(t, err)
}
