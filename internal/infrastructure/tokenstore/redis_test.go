package tokenstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisContainer(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore(t *testing.T) {
	client := newRedisContainer(t)
	ctx := context.Background()

	s := NewRedisStore(client, "test:token")

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Save(ctx, "shared-token"))

	other := NewRedisStore(client, "test:token")
	token, err := other.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shared-token", token)

	require.NoError(t, s.Clear(ctx))
	_, err = other.Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestNewRedisStore_DefaultKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	s := NewRedisStore(client, "")
	assert.Equal(t, "shesafe:auth:token", s.key)
}
