package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"candlepin/src/core/domain"
	"candlepin/src/infra/config"
	"candlepin/src/infra/db"
	"candlepin/src/infra/logger"
)

// setupPostgres starts a Postgres container and applies the migrations.
func setupPostgres(t *testing.T) *db.Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped with -short")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "candlepin",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://test:test@%s:%s/candlepin?sslmode=disable", host, port.Port())
		}),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:           host,
		Port:           port.Int(),
		User:           "test",
		Password:       "test",
		Name:           "candlepin",
		SSLMode:        "disable",
		MaxOpenConns:   5,
		MaxIdleConns:   1,
		ConnectTimeout: 30 * time.Second,
	}
	pg, err := db.New(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, pg.Migrate(ctx, db.MigrateUp))
	return pg
}

func TestPostgresStore(t *testing.T) {
	pg := setupPostgres(t)

	testStore(t, func(t *testing.T) Store {
		_, err := pg.Pool.Exec(context.Background(), `TRUNCATE documents`)
		require.NoError(t, err)
		return NewPostgresStore(pg, logger.Nop())
	})

	t.Run("repository round trip", func(t *testing.T) {
		ctx := context.Background()
		_, err := pg.Pool.Exec(ctx, `TRUNCATE documents`)
		require.NoError(t, err)
		r := New(NewPostgresStore(pg, logger.Nop()), logger.Nop())

		owner := seedOwner(t, r, "o1", "acme")
		require.NoError(t, r.CreateConsumerType(ctx, &domain.ConsumerType{ID: "t1", Label: "system"}))
		require.NoError(t, r.CreateConsumer(ctx, &domain.Consumer{
			ID:    "c1",
			UUID:  "uuid-1",
			Name:  "box",
			Owner: owner,
			Type:  &domain.ConsumerType{Label: "system"},
			Facts: map[string]string{"virt.is_guest": "true"},
		}))

		got, err := r.GetConsumer(ctx, "uuid-1")
		require.NoError(t, err)
		assert.Equal(t, "acme", got.Owner.Key)
		assert.Equal(t, "t1", got.Type.ID)
		assert.True(t, got.IsGuest())

		err = r.CreateConsumer(ctx, &domain.Consumer{ID: "c2", UUID: "uuid-1", Owner: owner})
		assert.True(t, domain.IsAlreadyExists(err))

		list, err := r.ListConsumers(ctx, "o1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
