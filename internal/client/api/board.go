package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/client/transport"
	"github.com/avorobjovs/demoboard/internal/common"
)

// Board talks to the post-board demo API. The API accepts writes but does not
// persist them; callers treat write failures as non-fatal and rely on the
// local overlay store.
type Board struct {
	doer transport.Doer
	base string
}

func NewBoard(doer transport.Doer, baseURL string) *Board {
	return &Board{doer: doer, base: baseURL}
}

// List fetches one page of posts using offset pagination.
func (c *Board) List(ctx context.Context, page, limit int) ([]models.Post, error) {
	start := (page - 1) * limit
	url := fmt.Sprintf("%s/posts?_start=%d&_limit=%d", c.base, start, limit)
	return c.getPosts(ctx, url)
}

// ListByUser fetches one page of a single user's posts.
func (c *Board) ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Post, error) {
	start := (page - 1) * limit
	url := fmt.Sprintf("%s/posts?userId=%d&_start=%d&_limit=%d", c.base, userID, start, limit)
	return c.getPosts(ctx, url)
}

// Get fetches a single post by id. A 404 maps to common.ErrNotFound.
func (c *Board) Get(ctx context.Context, id int64) (*models.Post, error) {
	url := fmt.Sprintf("%s/posts/%d", c.base, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, common.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteStatusError(resp)
	}
	var out models.Post
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode post: %w", err)
	}
	return &out, nil
}

// Comments fetches the comments attached to a post.
func (c *Board) Comments(ctx context.Context, postID int64) ([]models.Comment, error) {
	url := fmt.Sprintf("%s/comments?postId=%d", c.base, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("comments request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteStatusError(resp)
	}
	var out []models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return out, nil
}

// Create submits a new post. The board discards it; the returned error only
// reports transport/status problems.
func (c *Board) Create(ctx context.Context, post models.Post) error {
	return c.write(ctx, http.MethodPost, c.base+"/posts", post)
}

// Update submits an edit to an existing post.
func (c *Board) Update(ctx context.Context, post models.Post) error {
	url := fmt.Sprintf("%s/posts/%d", c.base, post.ID)
	return c.write(ctx, http.MethodPut, url, post)
}

// Delete submits a deletion.
func (c *Board) Delete(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/posts/%d", c.base, id)
	return c.write(ctx, http.MethodDelete, url, nil)
}

func (c *Board) getPosts(ctx context.Context, url string) ([]models.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteStatusError(resp)
	}
	var out []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return out, nil
}

func (c *Board) write(ctx context.Context, method, url string, payload any) error {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("board write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return remoteStatusError(resp)
	}
	return nil
}
