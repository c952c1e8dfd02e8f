package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrateCommand(t *testing.T) {
	for _, name := range []string{"up", "down", "status"} {
		cmd, err := ParseMigrateCommand(name)
		require.NoError(t, err)
		assert.Equal(t, MigrateCommand(name), cmd)
	}

	_, err := ParseMigrateCommand("redo")
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	body, err := fs.ReadFile(migrations, files[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS documents")
}
