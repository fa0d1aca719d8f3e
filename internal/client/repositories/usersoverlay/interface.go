package usersoverlay

import (
	"context"

	"github.com/avorobjovs/demoboard/internal/client/models"
)

// Repository holds the client-side patches over the user directory: users
// hidden from every listing and per-user role overrides. Both are
// additive-only for a session and cleared on logout.
type Repository interface {
	MarkDeleted(ctx context.Context, userID int64) error
	IsDeleted(ctx context.Context, userID int64) (bool, error)
	DeletedIDs(ctx context.Context) (map[int64]bool, error)

	// ChangeRole records an override; it replaces any previous override.
	ChangeRole(ctx context.Context, userID int64, role models.Role) error

	// GetRole returns the override for userID, or common.ErrNotFound.
	GetRole(ctx context.Context, userID int64) (models.Role, error)

	// RoleChanges returns all overrides.
	RoleChanges(ctx context.Context) (map[int64]models.Role, error)

	// ClearUserData wipes the deletion set and all role overrides.
	ClearUserData(ctx context.Context) error
}
