package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestInMemoryBlacklist(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	ok, err := store.IsBlacklisted("unknown")
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.AddToBlacklist("live", time.Now().Add(time.Hour)))
	ok, err = store.IsBlacklisted("live")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	require.NoError(t, store.AddToBlacklist("expired-1", time.Now().Add(-time.Hour)))
	require.NoError(t, store.AddToBlacklist("expired-2", time.Now().Add(-time.Minute)))
	require.NoError(t, store.AddToBlacklist("valid", time.Now().Add(time.Hour)))

	store.CleanUpExpired()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.NotContains(t, store.blacklist, "expired-1")
	assert.NotContains(t, store.blacklist, "expired-2")
	assert.Contains(t, store.blacklist, "valid")
}

func TestRedisBlacklist(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	defer func() { _ = client.Close() }()
	store := NewRedisBlacklistStore(client)

	ok, err := store.IsBlacklisted("token-a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.AddToBlacklist("token-a", time.Now().Add(time.Minute)))
	ok, err = store.IsBlacklisted("token-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, redisBlacklistPrefix+"token-a").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// already expired tokens are not stored
	require.NoError(t, store.AddToBlacklist("token-b", time.Now().Add(-time.Minute)))
	ok, err = store.IsBlacklisted("token-b")
	require.NoError(t, err)
	assert.False(t, ok)
}
