// Package databasetest starts a throwaway PostgreSQL for integration tests.
package databasetest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Tomlord1122/todo-lists-api/internal/config"
)

const (
	image    = "postgres:16-alpine"
	dbName   = "todo"
	user     = "todo"
	password = "todo"
)

// StartPostgres runs a container and returns a DBConfig pointing at it
// together with a function that terminates it.
func StartPostgres(ctx context.Context) (config.DBConfig, func(context.Context) error, error) {
	container, err := postgres.Run(
		ctx,
		image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return config.DBConfig{}, nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		return config.DBConfig{}, nil, fmt.Errorf("container port: %w", err)
	}

	cfg := config.DBConfig{
		Host:            host,
		Port:            port.Port(),
		User:            user,
		Password:        password,
		Name:            dbName,
		Encrypt:         false,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
	terminate := func(ctx context.Context) error {
		return container.Terminate(ctx)
	}
	return cfg, terminate, nil
}
