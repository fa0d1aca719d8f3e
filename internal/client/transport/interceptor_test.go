package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avorobjovs/demoboard/internal/cookiejar"
)

type fakeRefresher struct {
	calls int
	err   error
	fn    func()
}

func (f *fakeRefresher) RefreshToken(ctx context.Context) error {
	f.calls++
	if f.fn != nil {
		f.fn()
	}
	return f.err
}

// boardServer returns 401 until the request carries accessToken=good.
func boardServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		c, err := r.Cookie("accessToken")
		if err != nil || c.Value != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"t","body":"b","userId":1}]`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newInterceptor(t *testing.T, boardURL string) (*Interceptor, *cookiejar.Jar) {
	t.Helper()
	u, err := url.Parse(boardURL)
	require.NoError(t, err)
	jar := cookiejar.New()
	i := New(http.DefaultClient, jar, Endpoints{BoardHost: u.Host}, nil)
	return i, jar
}

func authedGet(t *testing.T, i *Interceptor, rawURL string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	resp, err := i.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestDo_RefreshThenSingleRetry(t *testing.T) {
	var hits int
	srv := boardServer(t, &hits)
	i, jar := newInterceptor(t, srv.URL)

	jar.Set("accessToken", "expired", cookiejar.Options{MaxAge: 3600})
	ref := &fakeRefresher{fn: func() { jar.Set("accessToken", "good", cookiejar.Options{MaxAge: 3600}) }}
	i.BindSession(ref, nil)

	resp := authedGet(t, i, srv.URL+"/posts?_start=0&_limit=9")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, ref.calls)
	assert.Equal(t, 2, hits, "original request plus exactly one retry")
}

func TestDo_RefreshFailureForcesLogout_NoSecondRetry(t *testing.T) {
	var hits int
	srv := boardServer(t, &hits)
	i, jar := newInterceptor(t, srv.URL)

	jar.Set("accessToken", "expired", cookiejar.Options{MaxAge: 3600})
	ref := &fakeRefresher{err: context.DeadlineExceeded}
	loggedOut := false
	i.BindSession(ref, func(context.Context) { loggedOut = true })

	resp := authedGet(t, i, srv.URL+"/posts/1")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "original 401 is returned to the caller")
	assert.Equal(t, 1, ref.calls)
	assert.Equal(t, 1, hits, "no retry after a failed refresh")
	assert.True(t, loggedOut)
}

func TestDo_RetriedResponseReturnedEvenIfNot2xx(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	i, _ := newInterceptor(t, srv.URL)
	i.BindSession(&fakeRefresher{}, nil)

	resp := authedGet(t, i, srv.URL+"/posts/1")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 2, hits, "at most one retry per call")
}

func TestDo_AuthAndPublicEndpointsNeverRefresh(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	jar := cookiejar.New()
	i := New(http.DefaultClient, jar, Endpoints{DirectoryHost: u.Host}, nil)
	ref := &fakeRefresher{}
	i.BindSession(ref, nil)

	for _, path := range []string{"/login", "/auth/refresh", "/users?page=1", "/register"} {
		resp := authedGet(t, i, srv.URL+path)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	assert.Equal(t, 0, ref.calls, "auth/public endpoints must not trigger refresh")
	assert.Equal(t, 4, hits)
}

func TestDo_CredentialsOmittedUnlessRequired(t *testing.T) {
	var gotCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("accessToken")
		gotCookie = err == nil
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	jar := cookiejar.New()
	jar.Set("accessToken", "tok", cookiejar.Options{MaxAge: 3600})
	i := New(http.DefaultClient, jar, Endpoints{DirectoryHost: u.Host}, nil)

	// public endpoint: no credentials
	resp := authedGet(t, i, srv.URL+"/users?page=1")
	_ = resp
	assert.False(t, gotCookie)

	// protected endpoint on an unknown host: still no credentials
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/somewhere", nil)
	require.NoError(t, err)
	req.URL.Host = u.Host
	resp2, err := i.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.True(t, gotCookie, "calls to a classified remote host carry cookies")
}

func TestDo_WithCredentialsOptIn(t *testing.T) {
	var gotCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("refreshToken")
		gotCookie = err == nil
	}))
	t.Cleanup(srv.Close)

	jar := cookiejar.New()
	jar.Set("refreshToken", "r1", cookiejar.Options{MaxAge: 600, HttpOnly: true})
	i := New(http.DefaultClient, jar, Endpoints{}, nil)

	// an /auth/ path is an auth endpoint, normally sent without credentials
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/auth/refresh", nil)
	require.NoError(t, err)
	resp, err := i.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, gotCookie)

	// the session store opts in explicitly for the refresh call
	req2, err := http.NewRequestWithContext(WithCredentials(context.Background()), http.MethodPost, srv.URL+"/auth/refresh", nil)
	require.NoError(t, err)
	resp2, err := i.Do(req2)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.True(t, gotCookie)
}

func TestDo_BodyReplayedOnRetry(t *testing.T) {
	var bodies []string
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if hits == 1 {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	i, _ := newInterceptor(t, srv.URL)
	i.BindSession(&fakeRefresher{}, nil)

	payload := `{"title":"x","body":"y","userId":1}`
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		srv.URL+"/posts", bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	resp, err := i.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, bodies, 2)
	assert.Equal(t, payload, bodies[0])
	assert.Equal(t, payload, bodies[1], "retry must replay the original body")
}
