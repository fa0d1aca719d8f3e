package usersoverlay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/common"
	"github.com/avorobjovs/demoboard/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) MarkDeleted(ctx context.Context, userID int64) error {
	query := `INSERT INTO deleted_users (id) VALUES (?) ON CONFLICT(id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark user deleted: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) IsDeleted(ctx context.Context, userID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deleted_users WHERE id = ?`, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query deleted users: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeletedIDs(ctx context.Context) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM deleted_users`)
	if err != nil {
		return nil, fmt.Errorf("failed to select deleted users: %w", err)
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

func (r *SQLiteRepository) ChangeRole(ctx context.Context, userID int64, role models.Role) error {
	query := `INSERT INTO role_changes (user_id, role) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`
	if _, err := r.db.ExecContext(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("failed to change role: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetRole(ctx context.Context, userID int64) (models.Role, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM role_changes WHERE user_id = ?`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("failed to query role change: %w", err)
	}
	return models.Role(role), nil
}

func (r *SQLiteRepository) RoleChanges(ctx context.Context) (map[int64]models.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, role FROM role_changes`)
	if err != nil {
		return nil, fmt.Errorf("failed to select role changes: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]models.Role)
	for rows.Next() {
		var id int64
		var role string
		if err := rows.Scan(&id, &role); err != nil {
			return nil, err
		}
		result[id] = models.Role(role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ClearUserData(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deleted_users`); err != nil {
		return fmt.Errorf("failed to clear deleted users: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM role_changes`); err != nil {
		return fmt.Errorf("failed to clear role changes: %w", err)
	}
	return nil
}
