package services

import (
	"context"
	"errors"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/client/repositories/favorites"
	"github.com/avorobjovs/demoboard/internal/client/repositories/localposts"
	"github.com/avorobjovs/demoboard/internal/common"
	"github.com/avorobjovs/demoboard/internal/logging"
)

// Board pagination. The board corpus is fixed at 100 posts; local posts do
// not change the page count.
const (
	PostsPerPage = 9
	TotalPages   = 12
)

// BoardAPI is the remote surface of the post board the service consumes.
type BoardAPI interface {
	List(ctx context.Context, page, limit int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Comments(ctx context.Context, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, post models.Post) error
	Update(ctx context.Context, post models.Post) error
	Delete(ctx context.Context, id int64) error
}

// PostsService merges the remote board with the local overlay. The board
// does not persist writes, so every mutation lands in the overlay and views
// patch the remote data with it: local posts prepend page one, the deletion
// set hides remote posts, and an edited remote post is shadowed by a local
// copy under the same id.
type PostsService struct {
	board  BoardAPI
	local  localposts.Repository
	favs   favorites.Repository
	logger logging.Logger
}

func NewPostsService(board BoardAPI, local localposts.Repository, favs favorites.Repository, logger logging.Logger) *PostsService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PostsService{board: board, local: local, favs: favs, logger: logger}
}

// List returns one merged page of posts and the total page count. Page one
// carries all local posts ahead of the remote ones.
func (s *PostsService) List(ctx context.Context, page int) ([]models.Post, int, error) {
	remote, err := s.board.List(ctx, page, PostsPerPage)
	if err != nil {
		return nil, 0, err
	}
	kept, err := s.dropDeleted(ctx, remote)
	if err != nil {
		return nil, 0, err
	}

	if page != 1 {
		return kept, TotalPages, nil
	}
	locals, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return append(locals, kept...), TotalPages, nil
}

// ListByUser returns one page of a single user's posts, deletion-filtered.
func (s *PostsService) ListByUser(ctx context.Context, userID int64, page int) ([]models.Post, error) {
	remote, err := s.board.ListByUser(ctx, userID, page, PostsPerPage)
	if err != nil {
		return nil, err
	}
	return s.dropDeleted(ctx, remote)
}

// Get resolves a post by id: local overlay first, remote otherwise. A remote
// post hidden by the deletion set is absent, reported as common.ErrNotFound.
func (s *PostsService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.local.Get(ctx, id)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	deleted, err := s.local.IsDeleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, common.ErrNotFound
	}
	return s.board.Get(ctx, id)
}

// Comments fetches the comments of a post from the board.
func (s *PostsService) Comments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.board.Comments(ctx, postID)
}

// Create submits the post to the board, which discards it, and stores it in
// the overlay under a freshly generated id. The stored post is returned. The
// overlay is the system of record, so a failed board write is logged and not
// propagated.
func (s *PostsService) Create(ctx context.Context, title, body string, userID int64) (models.Post, error) {
	post := models.Post{Title: title, Body: body, UserID: userID}
	if err := s.board.Create(ctx, post); err != nil {
		s.logger.Warn(ctx, "board create failed", "error", err)
	}
	return s.local.Add(ctx, post)
}

// Update edits a post. A local-origin post is updated in place. A remote
// post is forked: the remote id joins the deletion set and a local copy under
// the same id carries the new content, so the id stays stable across the edit.
func (s *PostsService) Update(ctx context.Context, id int64, title, body string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.local.Get(ctx, id)
	if err == nil {
		return s.local.Update(ctx, id, title, body)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	edited := models.Post{ID: id, Title: title, Body: body, UserID: current.UserID}
	if err := s.board.Update(ctx, edited); err != nil {
		s.logger.Warn(ctx, "board update failed", "post_id", id, "error", err)
	}
	if err := s.local.MarkDeleted(ctx, id); err != nil {
		return err
	}
	return s.local.AddWithID(ctx, edited)
}

// Delete removes a post: a local-origin post is dropped from the overlay, a
// remote one joins the deletion set. Either way the id leaves the favorites.
func (s *PostsService) Delete(ctx context.Context, id int64) error {
	if err := s.favs.Remove(ctx, id); err != nil {
		return err
	}

	_, err := s.local.Get(ctx, id)
	if err == nil {
		return s.local.Delete(ctx, id)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	if err := s.board.Delete(ctx, id); err != nil {
		s.logger.Warn(ctx, "board delete failed", "post_id", id, "error", err)
	}
	return s.local.MarkDeleted(ctx, id)
}

// AddFavorite marks a post id as favorite.
func (s *PostsService) AddFavorite(ctx context.Context, id int64) error {
	return s.favs.Add(ctx, id)
}

// RemoveFavorite unmarks a post id.
func (s *PostsService) RemoveFavorite(ctx context.Context, id int64) error {
	return s.favs.Remove(ctx, id)
}

// IsFavorite reports whether a post id is in the favorites set.
func (s *PostsService) IsFavorite(ctx context.Context, id int64) (bool, error) {
	return s.favs.Contains(ctx, id)
}

// Favorites assembles the favorites view: local posts united with every
// remote page, deletion-filtered, intersected with the favorites set, and
// deduplicated by id with local entries winning over remote ones.
func (s *PostsService) Favorites(ctx context.Context) ([]models.Post, error) {
	favSet, err := s.favs.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(favSet) == 0 {
		return nil, nil
	}

	locals, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.local.DeletedIDs(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Post
	seen := make(map[int64]bool)
	for _, post := range locals {
		if favSet[post.ID] && !seen[post.ID] {
			out = append(out, post)
			seen[post.ID] = true
		}
	}

	for page := 1; page <= TotalPages; page++ {
		remote, err := s.board.List(ctx, page, PostsPerPage)
		if err != nil {
			return nil, err
		}
		for _, post := range remote {
			if deleted[post.ID] || seen[post.ID] || !favSet[post.ID] {
				continue
			}
			out = append(out, post)
			seen[post.ID] = true
		}
	}
	return out, nil
}

// ClearUserData wipes the overlay and the favorites set.
func (s *PostsService) ClearUserData(ctx context.Context) error {
	if err := s.local.ClearUserData(ctx); err != nil {
		return err
	}
	return s.favs.ClearUserData(ctx)
}

// dropDeleted filters out remote posts hidden by the deletion set. Local
// posts are never filtered; the set only suppresses remote-origin entries.
func (s *PostsService) dropDeleted(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	deleted, err := s.local.DeletedIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return posts, nil
	}
	kept := posts[:0]
	for _, post := range posts {
		if !deleted[post.ID] {
			kept = append(kept, post)
		}
	}
	return kept, nil
}
