// Package localdb opens the client's local SQLite database and applies the
// embedded goose migrations. The database is the durable backing for the
// overlay stores and the persisted session, the stand-in for browser storage.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avorobjovs/demoboard/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// Open opens (creating if necessary) the database at dsn and migrates it to
// the latest version.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate local db: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
