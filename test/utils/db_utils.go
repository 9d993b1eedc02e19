package utils

import (
	"fmt"
	"log"

	"github.com/momo-data/momo-indexer/config"
	dbTypes "github.com/momo-data/momo-indexer/db"
	"github.com/ory/dockertest/v3"
	"gorm.io/gorm"
)

// SetupTestDatabase starts a throwaway postgres container. Pass a docker network ID to join an
// existing network, or "" to create a new one.
func SetupTestDatabase(optionalDockerNetworkID string) (*TestDockerDBConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	databaseName := "test"
	user := "test"
	password := "test"

	connectUserEnv := fmt.Sprintf("POSTGRES_USER=%s", user)
	connectPasswordEnv := fmt.Sprintf("POSTGRES_PASSWORD=%s", password)
	connectDbEnv := fmt.Sprintf("POSTGRES_DB=%s", databaseName)

	networkCreated, networkName, network, err := findOrCreateDockerNetworkByID(pool, optionalDockerNetworkID)
	if err != nil {
		return nil, err
	}

	resourceName := fmt.Sprintf("postgres-%s", randResourceNameSuffix(10))

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       resourceName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env:        []string{connectUserEnv, connectPasswordEnv, connectDbEnv},
		Networks:   []*dockertest.Network{network},
	})
	if err != nil {
		cleanup(pool, nil, network, networkCreated)
		return nil, err
	}

	host := resource.GetBoundIP("5432/tcp")
	port := resource.GetPort("5432/tcp")
	dbConf := config.Database{
		ConnectionString: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, databaseName),
		LogLevel:         "silent",
	}

	var db *gorm.DB
	if err := pool.Retry(func() error {
		var err error
		db, err = dbTypes.PostgresDbConnect(dbConf)
		return err
	}); err != nil {
		cleanup(pool, resource, network, networkCreated)
		return nil, err
	}

	clean := func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}

		if networkCreated {
			if err := pool.RemoveNetwork(network); err != nil {
				log.Fatalf("Could not remove network: %s", err)
			}
		}
	}

	conf := TestDockerDBConfig{
		DockerResourceName: resourceName,
		DockerNetwork:      networkName,
		GormDB:             db,
		Database:           dbConf,
		Clean:              clean,
	}

	return &conf, nil
}

type TestDockerDBConfig struct {
	DockerResourceName string
	DockerNetwork      string
	GormDB             *gorm.DB
	Database           config.Database
	Clean              func()
}

// cleanup releases what a failed setup already created. Errors are only logged, the setup error wins.
func cleanup(pool *dockertest.Pool, resource *dockertest.Resource, network *dockertest.Network, networkCreated bool) {
	if resource != nil {
		if err := pool.Purge(resource); err != nil {
			log.Printf("Could not purge resource: %s", err)
		}
	}

	if networkCreated && network != nil {
		if err := pool.RemoveNetwork(network); err != nil {
			log.Printf("Could not remove network: %s", err)
		}
	}
}
