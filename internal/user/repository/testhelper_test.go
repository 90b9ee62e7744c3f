package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	commonsqlite "github.com/AlibekovAA/movie-watchlist/internal/common/sqlite"
)

func setupTestDB(t *testing.T) *commonsqlite.DB {
	t.Helper()

	db, err := commonsqlite.OpenMemory(context.Background(), t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, commonsqlite.RunMigrations(db.Writer))
	return db
}
