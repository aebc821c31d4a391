package persistence

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gkh-dispatch/internal/config"
)

func TestMigrationsFS_ContainsGooseFiles(t *testing.T) {
	fsys, err := MigrationsFS()
	require.NoError(t, err)

	names, err := fs.Glob(fsys, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_seed_schema.sql", "00002_seed_sample_data.sql"}, names)

	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestRunMigrations_NoPoolIsNoop(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestDisabledStores(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	pg, err := NewPostgres(ctx, config.PostgresConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.ErrorIs(t, pg.Ping(ctx), ErrNotConfigured)
	assert.Nil(t, pg.PoolHandle())
	pg.Close()

	rdb := NewRedis(ctx, config.RedisConfig{}, logger)
	assert.False(t, rdb.Enabled())
	assert.ErrorIs(t, rdb.Ping(ctx), ErrNotConfigured)
	rdb.Close()

	var nilPG *Postgres
	assert.ErrorIs(t, nilPG.Ping(ctx), ErrNotConfigured)
}
