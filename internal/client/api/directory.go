// Package api contains thin typed clients for the three remote demo
// services: the user directory, the post board, and the book library. Each
// client goes through the transport interceptor and maps wire errors to the
// shared sentinels.
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

// Directory talks to the user-directory demo API. Every call carries the
// configured API key header.
type Directory struct {
	doer   transport.Doer
	base   string
	apiKey string
}

func NewDirectory(doer transport.Doer, baseURL, apiKey string) *Directory {
	return &Directory{doer: doer, base: baseURL, apiKey: apiKey}
}

type directoryLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type directoryLoginResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// Login exchanges credentials for an opaque token. The directory only knows
// its own canned accounts; the session store substitutes one transparently.
func (c *Directory) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(directoryLoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	var out directoryLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("%w: %s", common.ErrUnauthorized, out.Error)
		}
		return "", common.ErrUnauthorized
	}
	return out.Token, nil
}

// Users fetches one page of the directory listing.
func (c *Directory) Users(ctx context.Context, page int) (*models.UsersPage, error) {
	url := fmt.Sprintf("%s/users?page=%d", c.base, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("users request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteStatusError(resp)
	}
	var out models.UsersPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode users page: %w", err)
	}
	return &out, nil
}

type directoryRegisterResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
	Error string `json:"error"`
}

// Register passes a registration through to the directory's public endpoint.
func (c *Directory) Register(ctx context.Context, email, password string) (int64, string, error) {
	body, err := json.Marshal(directoryLoginRequest{Email: email, Password: password})
	if err != nil {
		return 0, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/register", bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	c.setHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	var out directoryRegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, "", fmt.Errorf("failed to decode register response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return 0, "", fmt.Errorf("register rejected: %s", out.Error)
		}
		return 0, "", remoteStatusError(resp)
	}
	return out.ID, out.Token, nil
}

func (c *Directory) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
}

// remoteStatusError drains the body and maps a non-2xx status to an error.
func remoteStatusError(resp *http.Response) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusUnauthorized {
		return common.ErrUnauthorized
	}
	return fmt.Errorf("remote returned HTTP %d", resp.StatusCode)
}
