package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisClient_JSONRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	type summary struct {
		TotalItems int `json:"total_items"`
	}

	var got summary
	hit, err := client.GetJSON(ctx, "reports:inventory:all", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, client.SetJSON(ctx, "reports:inventory:all", summary{TotalItems: 7}, time.Minute))

	hit, err = client.GetJSON(ctx, "reports:inventory:all", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.TotalItems)
}

func TestRedisClient_DeleteByPattern(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("reports:inventory:all", "{}"))
	require.NoError(t, mr.Set("reports:inventory:north", "{}"))
	require.NoError(t, mr.Set("sessions:1", "{}"))

	n, err := client.DeleteByPattern(ctx, "reports:*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists("reports:inventory:all"))
	assert.True(t, mr.Exists("sessions:1"))
}

func TestNewRedisClient_unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisClient(&Config{Addr: addr})
	assert.Error(t, err)
}

func TestRedisClient_Counter(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	n, err := client.GetInt(ctx, "reports-generation")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = client.Incr(ctx, "reports-generation")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.GetInt(ctx, "reports-generation")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
