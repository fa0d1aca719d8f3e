// Package services contains the application services of the demoboard
// client: the session store, the posts/users merge layers, and the book
// catalog front. Each service owns its mutable state behind a mutex, which
// stands in for the single browser event loop the behavior was designed for.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/client/repositories/session"
	"github.com/avorobjovs/demoboard/internal/common"
	"github.com/avorobjovs/demoboard/internal/cookiejar"
	"github.com/avorobjovs/demoboard/internal/logging"
)

// nowFn is a seam for tests that pin token timestamps.
var nowFn = time.Now

// clearRefreshTimeout bounds the fire-and-forget clear call on logout.
const clearRefreshTimeout = 5 * time.Second

// SessionState is the session lifecycle state.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Clearer is the per-session overlay surface the session store wipes on
// logout. All overlay repositories implement it.
type Clearer interface {
	ClearUserData(ctx context.Context) error
}

// DirectoryLogin is the slice of the directory client the session store
// needs for the upstream credential exchange.
type DirectoryLogin interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenClient is the token-service surface the session store drives.
type TokenClient interface {
	SetRefresh(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context) (string, error)
	ClearRefresh(ctx context.Context) error
}

// The directory's demo backend only recognizes its own canned accounts, so
// every successful dashboard login is exchanged upstream with this fixed
// credential. A compatibility shim, not a security boundary.
const (
	upstreamLoginEmail    = "eve.holt@reqres.in"
	upstreamLoginPassword = "cityslicka"
)

// allowEntry is one recognized dashboard credential. Password hashes are
// computed at startup from the published demo passwords.
type allowEntry struct {
	passwordHash []byte
	user         models.User
}

var allowList map[string]allowEntry

func init() {
	entries := []struct {
		email, password string
		user            models.User
	}{
		{"admin@admin.com", "admin123", models.User{
			ID: 1, Email: "admin@admin.com", FirstName: "Admin", LastName: "User",
			Avatar: "https://reqres.in/img/faces/1-image.jpg", Role: models.RoleAdmin,
		}},
		{"user@user.com", "user123", models.User{
			ID: 2, Email: "user@user.com", FirstName: "Regular", LastName: "User",
			Avatar: "https://reqres.in/img/faces/2-image.jpg", Role: models.RoleUser,
		}},
	}

	allowList = make(map[string]allowEntry, len(entries))
	for _, e := range entries {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		allowList[e.email] = allowEntry{passwordHash: hash, user: e.user}
	}
}

// AuthService is the session store. It orchestrates login, logout, silent
// renewal, and startup rehydration, and publishes state changes to
// subscribers.
type AuthService struct {
	directory DirectoryLogin
	tokens    TokenClient
	jar       *cookiejar.Jar
	repo      session.Repository
	overlays  []Clearer
	logger    logging.Logger

	mu          sync.Mutex
	state       SessionState
	user        *models.User
	role        models.Role
	accessToken string
	subscribers []func(SessionState)
}

// NewAuthService constructs the session store in the anonymous state.
// The overlays are the per-session stores wiped on logout.
func NewAuthService(directory DirectoryLogin, tokens TokenClient, jar *cookiejar.Jar,
	repo session.Repository, overlays []Clearer, logger logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AuthService{
		directory: directory,
		tokens:    tokens,
		jar:       jar,
		repo:      repo,
		overlays:  overlays,
		logger:    logger,
		state:     StateAnonymous,
	}
}

// Subscribe registers a callback invoked after every state transition.
func (a *AuthService) Subscribe(fn func(SessionState)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

func (a *AuthService) publish(state SessionState) {
	a.mu.Lock()
	subs := make([]func(SessionState), len(a.subscribers))
	copy(subs, a.subscribers)
	a.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}

// State returns the current session state.
func (a *AuthService) State() SessionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// CurrentUser returns the identity record of the authenticated session, or
// nil when anonymous.
func (a *AuthService) CurrentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// Role returns the role of the authenticated session, or the empty role.
func (a *AuthService) Role() models.Role {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.role
}

// Login validates credentials against the allow-list, exchanges the canned
// upstream credential for an access token, mints a refresh token, distributes
// both to their cookies, and persists the identity for later rehydration.
// An unrecognized pair fails with common.ErrInvalidCredentials and changes
// nothing.
func (a *AuthService) Login(ctx context.Context, email, password string) error {
	entry, ok := allowList[email]
	if ok {
		ok = bcrypt.CompareHashAndPassword(entry.passwordHash, []byte(password)) == nil
	}
	if !ok {
		return common.ErrInvalidCredentials
	}

	accessToken, err := a.directory.Login(ctx, upstreamLoginEmail, upstreamLoginPassword)
	if err != nil {
		return fmt.Errorf("upstream login exchange failed: %w", err)
	}

	refreshToken, err := common.MintOpaqueToken(common.RefreshTokenPrefix, nowFn())
	if err != nil {
		return fmt.Errorf("minting refresh token failed: %w", err)
	}
	if err := a.tokens.SetRefresh(ctx, refreshToken); err != nil {
		return fmt.Errorf("storing refresh token failed: %w", err)
	}

	a.jar.Set(common.AccessTokenCookieName, accessToken, cookiejar.Options{
		MaxAge:   int(common.AccessTokenTTL / time.Second),
		Path:     "/",
		SameSite: cookiejar.SameSiteLax,
	})

	user := entry.user
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := a.repo.Set(ctx, session.KeyUser, string(userJSON)); err != nil {
		return fmt.Errorf("persisting session user failed: %w", err)
	}
	if err := a.repo.Set(ctx, session.KeyRole, string(user.Role)); err != nil {
		return fmt.Errorf("persisting session role failed: %w", err)
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	a.user = &user
	a.role = user.Role
	a.accessToken = accessToken
	a.mu.Unlock()

	a.logger.Info(ctx, "session authenticated", "email", email, "role", string(user.Role))
	a.publish(StateAuthenticated)
	return nil
}

// Logout clears the overlay stores, the access-token cookie and the
// persisted session, then transitions to anonymous. The clear-refresh call
// to the token service is fire-and-forget: logout returns without waiting
// for it.
func (a *AuthService) Logout(ctx context.Context) error {
	for _, overlay := range a.overlays {
		if err := overlay.ClearUserData(ctx); err != nil {
			a.logger.Warn(ctx, "clearing overlay state failed", "error", err)
		}
	}
	a.jar.Delete(common.AccessTokenCookieName)
	if err := a.repo.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "clearing persisted session failed", "error", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), clearRefreshTimeout)
		defer cancel()
		if err := a.tokens.ClearRefresh(ctx); err != nil {
			a.logger.Warn(ctx, "clear-refresh call failed", "error", err)
		}
	}()

	a.mu.Lock()
	a.state = StateAnonymous
	a.user = nil
	a.role = ""
	a.accessToken = ""
	a.mu.Unlock()

	a.logger.Info(ctx, "session cleared")
	a.publish(StateAnonymous)
	return nil
}

// RefreshToken renews the access token via the token service. On success the
// cookie and the in-memory copy are replaced. On any failure the session is
// left untouched; the caller decides whether to force a logout.
func (a *AuthService) RefreshToken(ctx context.Context) error {
	accessToken, err := a.tokens.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	a.jar.Set(common.AccessTokenCookieName, accessToken, cookiejar.Options{
		MaxAge:   int(common.AccessTokenTTL / time.Second),
		Path:     "/",
		SameSite: cookiejar.SameSiteLax,
	})

	a.mu.Lock()
	a.accessToken = accessToken
	a.mu.Unlock()
	return nil
}

// InitializeAuth restores the session at startup. The access-token cookie is
// the only gate: if it is present, the persisted identity is loaded back into
// memory without any server-side validation. A cookie without persisted
// identity leaves the session effectively anonymous; the mismatch is
// reported, not corrected.
func (a *AuthService) InitializeAuth(ctx context.Context) error {
	token, ok := a.jar.Get(common.AccessTokenCookieName)
	if !ok {
		return nil
	}

	userJSON, err := a.repo.Get(ctx, session.KeyUser)
	if err != nil {
		a.logger.Warn(ctx, "access cookie present but no persisted session", "error", err)
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		a.logger.Warn(ctx, "persisted session user is unreadable", "error", err)
		return nil
	}
	role := user.Role
	if stored, err := a.repo.Get(ctx, session.KeyRole); err == nil && models.ValidRole(stored) {
		role = models.Role(stored)
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	a.user = &user
	a.role = role
	a.accessToken = token
	a.mu.Unlock()

	a.logger.Info(ctx, "session restored", "email", user.Email, "role", string(role))
	a.publish(StateAuthenticated)
	return nil
}
