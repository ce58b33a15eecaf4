//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"confluo/pkg/cache"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

func TestRedisCachePutGet(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedis(redisClient, "confluo-test")
	ctx := context.Background()

	if err := store.Put(ctx, "index:DOCS", []byte(`[{"id":"1"}]`), time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := store.Get(ctx, "index:DOCS")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `[{"id":"1"}]` {
		t.Errorf("Unexpected value: %s", value)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedis(redisClient, "confluo-test")

	_, err := store.Get(context.Background(), "index:ABSENT")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedis(redisClient, "confluo-test")
	ctx := context.Background()

	if err := store.Put(ctx, "index:SHORT", []byte("x"), time.Second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	_, err := store.Get(ctx, "index:SHORT")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("Expected expiry to surface as ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheDelete(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedis(redisClient, "confluo-test")
	ctx := context.Background()

	if err := store.Put(ctx, "index:GONE", []byte("x"), 0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "index:GONE"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "index:GONE"); !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("Expected ErrCacheMiss after delete, got %v", err)
	}
}
