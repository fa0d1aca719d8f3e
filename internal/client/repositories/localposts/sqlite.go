package localposts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/common"
	"github.com/avorobjovs/demoboard/internal/dbx"
)

// Test seams for id generation.
var (
	nowFn     = time.Now
	randIntFn = rand.Int63n
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// generateUniqueID combines the current unix-milli timestamp with a random
// suffix and retries until the result collides with no known id. The loop is
// the collision guard; adversarial clocks only make it iterate.
func generateUniqueID(existing map[int64]bool) int64 {
	var id int64
	for {
		id = nowFn().UnixMilli() + randIntFn(10000)
		if !existing[id] {
			return id
		}
	}
}

func (r *SQLiteRepository) Add(ctx context.Context, post models.Post) (models.Post, error) {
	existing, err := r.knownIDs(ctx)
	if err != nil {
		return models.Post{}, err
	}
	post.ID = generateUniqueID(existing)
	if err := r.AddWithID(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (r *SQLiteRepository) AddWithID(ctx context.Context, post models.Post) error {
	query := `INSERT INTO local_posts (id, title, body, user_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title,
			body = excluded.body,
			user_id = excluded.user_id`
	if _, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Body, post.UserID); err != nil {
		return fmt.Errorf("failed to upsert local post: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, title, body string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE local_posts SET title = ?, body = ? WHERE id = ?`, title, body, id)
	if err != nil {
		return fmt.Errorf("failed to update local post: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM local_posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete local post: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkDeleted(ctx context.Context, id int64) error {
	query := `INSERT INTO deleted_posts (id) VALUES (?) ON CONFLICT(id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark post deleted: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) IsDeleted(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deleted_posts WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query deletion set: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, body, user_id FROM local_posts WHERE id = ?`, id)

	p := &models.Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, user_id FROM local_posts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to select local posts: %w", err)
	}
	defer rows.Close()

	var result []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.UserID); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeletedIDs(ctx context.Context) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM deleted_posts`)
	if err != nil {
		return nil, fmt.Errorf("failed to select deletion set: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ClearUserData(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM local_posts`); err != nil {
		return fmt.Errorf("failed to clear local posts: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deleted_posts`); err != nil {
		return fmt.Errorf("failed to clear deletion set: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) knownIDs(ctx context.Context) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM local_posts`)
	if err != nil {
		return nil, fmt.Errorf("failed to select local post ids: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
