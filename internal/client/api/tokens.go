package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avorobjovs/demoboard/internal/client/transport"
	"github.com/avorobjovs/demoboard/internal/common"
)

// Tokens talks to the server-side token endpoints. All three are auth
// endpoints for the interceptor, so they never trigger a refresh cycle
// themselves.
type Tokens struct {
	doer transport.Doer
	base string
}

func NewTokens(doer transport.Doer, baseURL string) *Tokens {
	return &Tokens{doer: doer, base: baseURL}
}

type setRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SetRefresh ships the refresh token to the token service, which stores it
// in the protected cookie.
func (c *Tokens) SetRefresh(ctx context.Context, refreshToken string) error {
	body, err := json.Marshal(setRefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/set-refresh", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("set-refresh request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("set-refresh returned status %d", resp.StatusCode)
	}
	return nil
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// Refresh exchanges the protected cookie for a new access token. The call is
// an auth endpoint, which the interceptor would send without credentials, so
// the cookie is opted in explicitly here.
func (c *Tokens) Refresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(transport.WithCredentials(ctx), http.MethodPost, c.base+"/auth/refresh", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return "", common.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("refresh returned status %d", resp.StatusCode)
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("refresh response carried no token")
	}
	return out.AccessToken, nil
}

// ClearRefresh tells the token service to expire the protected cookie.
func (c *Tokens) ClearRefresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/clear-refresh", nil)
	if err != nil {
		return err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("clear-refresh request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("clear-refresh returned status %d", resp.StatusCode)
	}
	return nil
}
