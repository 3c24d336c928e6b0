// Package integration runs the quote cache against a real PostgreSQL server
// started with testcontainers. These tests require Docker to be running.
//
// Usage:
//
//	go test ./tests/integration/
//
// Tests skip themselves when no container provider is reachable.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tropicaldog17/appa/internal/db"
)

// TestContainer holds the PostgreSQL container and connection details
type TestContainer struct {
	Container testcontainers.Container
	DB        *db.DB
	Config    *db.Config
}

// SetupTestContainer creates and starts a PostgreSQL container for the quote cache
func SetupTestContainer(t *testing.T) *TestContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("appa_test"),
		postgres.WithUsername("appa_user"),
		postgres.WithPassword("appa_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	config := &db.Config{
		Driver:   db.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		User:     "appa_user",
		Password: "appa_password",
		Name:     "appa_test",
		SSLMode:  "disable",
	}

	database, err := db.Connect(config)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	tc := &TestContainer{
		Container: pgContainer,
		DB:        database,
		Config:    config,
	}
	t.Cleanup(func() { tc.Cleanup(t) })
	return tc
}

// Cleanup terminates the container and closes the database connection
func (tc *TestContainer) Cleanup(t *testing.T) {
	t.Helper()

	if tc.DB != nil {
		_ = tc.DB.Close()
		tc.DB = nil
	}
	if tc.Container != nil {
		if err := tc.Container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
		tc.Container = nil
	}
}
