package session

import "context"

// Keys used by the session store.
const (
	KeyUser = "user"
	KeyRole = "userRole"
)

// Repository is a small key-value store for the persisted parts of the
// session (identity record and role). Get returns common.ErrNotFound for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
