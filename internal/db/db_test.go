package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdrill/internal/db"
	"github.com/vytor/chessdrill/internal/testutil"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.db")

	d, err := db.Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Ping(context.Background()))

	var tables int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('drill_sessions', 'attempts')`).Scan(&tables))
	assert.Equal(t, 2, tables)
	testutil.MustClose(t, d)

	d, err = db.Open(path)
	require.NoError(t, err, "reopening skips applied migrations")
	defer testutil.MustClose(t, d)

	var applied int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}
