package localposts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE local_posts (
  id      INTEGER PRIMARY KEY,
  title   TEXT NOT NULL,
  body    TEXT NOT NULL,
  user_id INTEGER NOT NULL
);
CREATE TABLE deleted_posts (
  id INTEGER PRIMARY KEY
);`)
	require.NoError(t, err)
	return db
}

func TestAdd_GeneratesUniqueIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// Freeze the clock so uniqueness rests entirely on the collision loop.
	origNow, origRand := nowFn, randIntFn
	t.Cleanup(func() { nowFn, randIntFn = origNow, origRand })
	nowFn = func() time.Time { return time.UnixMilli(1_000_000) }

	// Adversarial random source: repeats each value once before moving on.
	seq := []int64{7, 7, 7, 8, 8, 9, 9, 10}
	i := 0
	randIntFn = func(int64) int64 {
		v := seq[i%len(seq)]
		i++
		return v
	}

	seen := make(map[int64]bool)
	for i := 0; i < 4; i++ {
		p, err := r.Add(ctx, models.Post{Title: "t", Body: "b", UserID: 1})
		require.NoError(t, err)
		require.False(t, seen[p.ID], "id %d issued twice", p.ID)
		seen[p.ID] = true
	}
}

func TestAddWithID_ShadowsSameID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AddWithID(ctx, models.Post{ID: 42, Title: "v1", Body: "b", UserID: 1}))
	require.NoError(t, r.AddWithID(ctx, models.Post{ID: 42, Title: "v2", Body: "b2", UserID: 1}))

	p, err := r.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "v2", p.Title)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdate_LocalPost(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AddWithID(ctx, models.Post{ID: 5, Title: "old", Body: "old", UserID: 2}))
	require.NoError(t, r.Update(ctx, 5, "new title", "new body"))

	p, err := r.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "new title", p.Title)
	assert.Equal(t, "new body", p.Body)
	assert.Equal(t, int64(2), p.UserID, "owner is untouched by an edit")
}

func TestUpdate_MissingPostReturnsNotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Update(context.Background(), 99, "t", "b")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_RemovesOnlyLocalPost(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AddWithID(ctx, models.Post{ID: 5, Title: "t", Body: "b", UserID: 1}))
	require.NoError(t, r.Delete(ctx, 5))

	_, err := r.Get(ctx, 5)
	require.ErrorIs(t, err, common.ErrNotFound)

	// deleting again must not fail
	require.NoError(t, r.Delete(ctx, 5))
}

func TestMarkDeleted_AndIsDeleted(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	deleted, err := r.IsDeleted(ctx, 17)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, r.MarkDeleted(ctx, 17))
	require.NoError(t, r.MarkDeleted(ctx, 17)) // idempotent

	deleted, err = r.IsDeleted(ctx, 17)
	require.NoError(t, err)
	assert.True(t, deleted)

	ids, err := r.DeletedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{17: true}, ids)
}

func TestClearUserData_WipesPostsAndDeletionSet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AddWithID(ctx, models.Post{ID: 1, Title: "t", Body: "b", UserID: 1}))
	require.NoError(t, r.MarkDeleted(ctx, 2))

	require.NoError(t, r.ClearUserData(ctx))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	ids, err := r.DeletedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
