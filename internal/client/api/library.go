package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/client/transport"
)

// Library talks to the open book-catalog API.
type Library struct {
	doer transport.Doer
	base string
}

func NewLibrary(doer transport.Doer, baseURL string) *Library {
	return &Library{doer: doer, base: baseURL}
}

// SearchFilters narrow a search query.
type SearchFilters struct {
	Author string
	Year   int
}

// Search queries the catalog with offset pagination.
func (c *Library) Search(ctx context.Context, query string, page, limit int, filters SearchFilters) (*models.BookPage, error) {
	q := query
	if filters.Author != "" {
		q += " author:" + filters.Author
	}
	if filters.Year != 0 {
		q += fmt.Sprintf(" first_publish_year:%d", filters.Year)
	}
	offset := (page - 1) * limit
	u := fmt.Sprintf("%s/search.json?q=%s&offset=%d&limit=%d",
		c.base, url.QueryEscape(q), offset, limit)

	var out models.BookPage
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type workResponse struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description json.RawMessage `json:"description"`
	Authors     []struct {
		Author struct {
			Key string `json:"key"`
		} `json:"author"`
	} `json:"authors"`
}

type authorResponse struct {
	Name string `json:"name"`
}

// Work fetches a work record and returns its title, description, and the
// author keys still to be resolved.
func (c *Library) Work(ctx context.Context, workID string) (*models.BookDetails, []string, error) {
	u := fmt.Sprintf("%s/works/%s.json", c.base, workID)

	var out workResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, nil, err
	}

	details := &models.BookDetails{
		Key:         out.Key,
		Title:       out.Title,
		Description: decodeDescription(out.Description),
	}
	var authorKeys []string
	for _, a := range out.Authors {
		// keys arrive as "/authors/OL123A"
		key := strings.TrimPrefix(a.Author.Key, "/authors/")
		if key != "" {
			authorKeys = append(authorKeys, key)
		}
	}
	return details, authorKeys, nil
}

// Author resolves one author id to a display name.
func (c *Library) Author(ctx context.Context, authorID string) (string, error) {
	u := fmt.Sprintf("%s/authors/%s.json", c.base, authorID)

	var out authorResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

func (c *Library) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("library request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteStatusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode library response: %w", err)
	}
	return nil
}

// decodeDescription handles the catalog's two description shapes: a plain
// string or {"type":..., "value": "..."}.
func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Value
	}
	return ""
}
