package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryClient()

	_, ok, err := kv.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "users", "[]"))
	v, ok, err := kv.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, kv.Set(ctx, "users", `[{"username":"a"}]`))
	v, _, _ = kv.Get(ctx, "users")
	assert.Equal(t, `[{"username":"a"}]`, v)

	require.NoError(t, kv.Remove(ctx, "users"))
	_, ok, _ = kv.Get(ctx, "users")
	assert.False(t, ok)

	// removing twice is fine
	assert.NoError(t, kv.Remove(ctx, "users"))
	assert.NoError(t, kv.Ping(ctx))
	assert.NoError(t, kv.Close(ctx))
}

func TestMemoryClient_EmptyStringIsPresent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryClient()

	require.NoError(t, kv.Set(ctx, "k", ""))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}
