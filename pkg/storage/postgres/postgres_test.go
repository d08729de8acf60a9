package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/00001_users.sql",
		"migrations/00002_verification_codes.sql",
	}, names)

	for _, n := range names {
		b, err := fs.ReadFile(migrations, n)
		require.NoError(t, err)
		assert.Contains(t, string(b), "-- +goose Up")
		assert.Contains(t, string(b), "-- +goose Down")
	}
}
