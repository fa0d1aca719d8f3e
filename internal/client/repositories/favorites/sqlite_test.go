package favorites

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE favorites (post_id INTEGER PRIMARY KEY);`)
	require.NoError(t, err)
	return db
}

func TestAddRemoveContains(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, 11))
	require.NoError(t, r.Add(ctx, 11)) // idempotent

	ok, err := r.Contains(ctx, 11)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.Remove(ctx, 11))
	ok, err = r.Contains(ctx, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	// removing a non-favorite is fine
	require.NoError(t, r.Remove(ctx, 12))
}

func TestAll_AndClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, 1))
	require.NoError(t, r.Add(ctx, 2))

	all, err := r.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: true, 2: true}, all)

	require.NoError(t, r.ClearUserData(ctx))
	all, err = r.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
