package favorites

import "context"

// Repository stores the set of favorited post ids.
type Repository interface {
	Add(ctx context.Context, postID int64) error
	Remove(ctx context.Context, postID int64) error
	Contains(ctx context.Context, postID int64) (bool, error)
	All(ctx context.Context) (map[int64]bool, error)
	ClearUserData(ctx context.Context) error
}
