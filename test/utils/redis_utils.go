package utils

import (
	"context"
	"fmt"
	"log"

	dockertest "github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
)

// SetupTestRedis starts a throwaway redis container and returns a connected client.
func SetupTestRedis() (*TestDockerRedisConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	return startRedis(pool, fmt.Sprintf("test-redis-%s", randResourceNameSuffix(10)), func(client *redis.Client) error {
		return client.Ping(context.Background()).Err()
	})
}

// startRedis runs the container under name and waits until ready succeeds. The container is
// purged when it never becomes ready.
func startRedis(pool *dockertest.Pool, name string, ready func(client *redis.Client) error) (*TestDockerRedisConfig, error) {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       name,
		Repository: "redis",
		Tag:        "7-alpine",
	})
	if err != nil {
		return nil, err
	}

	addr := resource.GetHostPort("6379/tcp")
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := pool.Retry(func() error {
		return ready(client)
	}); err != nil {
		_ = client.Close()
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			log.Printf("Could not purge resource: %s", purgeErr)
		}
		return nil, err
	}

	clean := func() {
		_ = client.Close()
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}

	return &TestDockerRedisConfig{Addr: addr, Client: client, Clean: clean}, nil
}

type TestDockerRedisConfig struct {
	Addr   string
	Client *redis.Client
	Clean  func()
}
