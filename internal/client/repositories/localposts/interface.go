package localposts

import (
	"context"

	"github.com/avorobjovs/demoboard/internal/client/models"
)

// Repository is the local overlay store for posts. It records posts created
// or edited client-side (the board API does not persist writes) and the set
// of remote post ids suppressed from every merged view.
type Repository interface {
	// Add stores a new local post under a freshly generated id, guaranteed
	// distinct from every currently known local id, and returns the stored post.
	Add(ctx context.Context, post models.Post) (models.Post, error)

	// AddWithID stores a local post under the id already set on it. This is
	// the edit-fork path: the caller marks the remote id deleted and shadows
	// it with a local copy bearing the same id.
	AddWithID(ctx context.Context, post models.Post) error

	// Update merges new title/body into an existing local-origin post.
	Update(ctx context.Context, id int64, title, body string) error

	// Delete physically removes a local-origin post.
	Delete(ctx context.Context, id int64) error

	// MarkDeleted adds a remote post id to the deletion set. Permanent for
	// the lifetime of the session; only ClearUserData removes it.
	MarkDeleted(ctx context.Context, id int64) error

	// IsDeleted reports whether id is in the deletion set.
	IsDeleted(ctx context.Context, id int64) (bool, error)

	// Get returns a local post by id, or common.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Post, error)

	// GetAll lists all local posts in insertion order.
	GetAll(ctx context.Context) ([]models.Post, error)

	// DeletedIDs returns the whole deletion set.
	DeletedIDs(ctx context.Context) (map[int64]bool, error)

	// ClearUserData wipes the local posts and the deletion set.
	ClearUserData(ctx context.Context) error
}
