package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsInitMigration(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_init.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	for _, table := range []string{"airlines", "destinations", "flights", "passengers", "users"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
