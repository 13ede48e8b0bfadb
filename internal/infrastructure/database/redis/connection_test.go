package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient connects to REDIS_TEST_ADDR; the tests are skipped without it
func testClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := NewClient(redis.NewClient(&redis.Options{Addr: addr}))
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Health(context.Background()))
	return client
}

func TestClient_JSONRoundTrip(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()
	key := "storefront:test:" + t.Name()
	t.Cleanup(func() { client.Del(ctx, key) })

	type record struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	require.NoError(t, client.SetJSON(ctx, key, record{ID: "abc", Email: "juan@example.com"}, time.Minute))

	var got record
	require.NoError(t, client.GetJSON(ctx, key, &got))
	assert.Equal(t, "juan@example.com", got.Email)

	require.NoError(t, client.Expire(ctx, key, time.Minute))

	require.NoError(t, client.Del(ctx, key))
	assert.ErrorIs(t, client.GetJSON(ctx, key, &got), ErrNotFound)
}

func TestClient_MissingKey(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	var dest map[string]string
	assert.ErrorIs(t, client.GetJSON(ctx, "storefront:test:missing", &dest), ErrNotFound)
	assert.ErrorIs(t, client.Expire(ctx, "storefront:test:missing", time.Minute), ErrNotFound)
}
