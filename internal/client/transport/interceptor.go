// Package transport wraps the outbound HTTP path of the client. Every call
// to a remote service goes through the Interceptor, which decides whether the
// call carries credentials and transparently renews an expired access token:
// one refresh, one retry, never more.
package transport

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/avorobjovs/demoboard/internal/cookiejar"
	"github.com/avorobjovs/demoboard/internal/logging"
)

// Doer is the minimal client surface the interceptor wraps. *http.Client
// satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Refresher renews the access token. The session store implements it.
type Refresher interface {
	RefreshToken(ctx context.Context) error
}

// Endpoints identifies the remote hosts the classification rules apply to.
type Endpoints struct {
	DirectoryHost string // user-directory demo API
	BoardHost     string // post-board demo API
}

// Interceptor classifies each outbound call and handles the 401-refresh-retry
// cycle for calls that require authentication.
//
// The session store both uses the interceptor (for its token-service calls)
// and is called back by it (for refresh and forced logout), so the session
// side is bound after construction via BindSession.
type Interceptor struct {
	base      Doer
	jar       *cookiejar.Jar
	endpoints Endpoints
	logger    logging.Logger

	mu            sync.Mutex
	refresher     Refresher
	onAuthFailure func(context.Context)
}

func New(base Doer, jar *cookiejar.Jar, endpoints Endpoints, logger logging.Logger) *Interceptor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Interceptor{base: base, jar: jar, endpoints: endpoints, logger: logger}
}

// BindSession wires the refresh and forced-logout callbacks. Until it is
// called, 401 responses pass through untouched.
func (i *Interceptor) BindSession(r Refresher, onAuthFailure func(context.Context)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.refresher = r
	i.onAuthFailure = onAuthFailure
}

type credentialsKey struct{}

// WithCredentials marks a request context so that cookies are attached even
// though the call is not classified as requiring auth. The session store uses
// it for the refresh endpoint, which needs the protected cookie.
func WithCredentials(ctx context.Context) context.Context {
	return context.WithValue(ctx, credentialsKey{}, true)
}

func credentialsForced(ctx context.Context) bool {
	v, _ := ctx.Value(credentialsKey{}).(bool)
	return v
}

// classification of a single call, evaluated per request.
type class struct {
	authEndpoint   bool
	publicEndpoint bool
	requiresAuth   bool
}

func (i *Interceptor) classify(req *http.Request) class {
	path := req.URL.Path
	c := class{
		authEndpoint:   strings.Contains(path, "/login") || strings.Contains(path, "/auth/"),
		publicEndpoint: strings.Contains(path, "/users") || strings.Contains(path, "/register"),
	}
	remote := req.URL.Host == i.endpoints.DirectoryHost || req.URL.Host == i.endpoints.BoardHost
	c.requiresAuth = remote && !c.authEndpoint && !c.publicEndpoint
	return c
}

// Do issues the request. For requiresAuth calls that come back 401, it runs
// the refresh sequentially and re-issues the original request exactly once,
// with credentials. If the refresh fails, the forced-logout callback runs and
// the original 401 is returned; the caller must not assume success.
func (i *Interceptor) Do(req *http.Request) (*http.Response, error) {
	c := i.classify(req)
	withCreds := c.requiresAuth || credentialsForced(req.Context())

	attempt, err := i.cloneRequest(req)
	if err != nil {
		return nil, err
	}
	if withCreds {
		i.jar.Attach(attempt)
	}

	resp, err := i.base.Do(attempt)
	if err != nil {
		return nil, err
	}
	i.jar.Absorb(resp)

	if !c.requiresAuth || resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	i.mu.Lock()
	refresher, onAuthFailure := i.refresher, i.onAuthFailure
	i.mu.Unlock()
	if refresher == nil {
		return resp, nil
	}

	// Note: concurrent 401s each run their own refresh; the last cookie
	// write wins. Accepted behavior, not coordinated here.
	if refreshErr := refresher.RefreshToken(req.Context()); refreshErr != nil {
		i.logger.Warn(req.Context(), "token refresh failed, forcing logout", "url", req.URL.String(), "error", refreshErr)
		if onAuthFailure != nil {
			onAuthFailure(req.Context())
		}
		return resp, nil
	}

	retry, err := i.cloneRequest(req)
	if err != nil {
		return resp, nil
	}
	i.jar.Attach(retry)

	resp.Body.Close()
	retried, err := i.base.Do(retry)
	if err != nil {
		return nil, err
	}
	i.jar.Absorb(retried)
	return retried, nil
}

// cloneRequest produces a fresh, sendable copy of req. Requests built with
// http.NewRequest over a bytes/strings reader replay their bodies via GetBody.
func (i *Interceptor) cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	clone.Header.Del("Cookie")
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}
