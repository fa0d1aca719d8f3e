// Package cookiejar implements the client-side cookie store. It plays the
// role of the browser cookie jar: named values with expiry, plus the HttpOnly
// split that keeps the refresh token out of reach of application code while
// the transport can still attach it to outbound requests.
package cookiejar

import (
	"net/http"
	"sync"
	"time"
)

// SameSite mirrors the cookie attribute of the same name.
type SameSite string

const (
	SameSiteLax    SameSite = "lax"
	SameSiteStrict SameSite = "strict"
	SameSiteNone   SameSite = "none"
)

// DefaultMaxAge is applied when Set is called with a non-positive MaxAge.
const DefaultMaxAge = 86400 // one day, in seconds

// Options control how a cookie is stored.
type Options struct {
	MaxAge   int // seconds; <=0 means DefaultMaxAge
	Path     string
	Secure   bool
	HttpOnly bool
	SameSite SameSite
}

type entry struct {
	value   string
	expires time.Time
	opts    Options
}

// Jar is an in-process cookie store. All methods are safe for concurrent use
// and are no-ops on a nil receiver, which covers callers running without a
// session environment at all (the former server-side-rendering guard).
type Jar struct {
	mu      sync.Mutex
	cookies map[string]entry

	// test seam
	now func() time.Time
}

func New() *Jar {
	return &Jar{cookies: make(map[string]entry), now: time.Now}
}

// Get returns the value of a readable, unexpired cookie. HttpOnly entries are
// never returned here; only the transport sees them.
func (j *Jar) Get(name string) (string, bool) {
	if j == nil {
		return "", false
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	e, ok := j.cookies[name]
	if !ok || e.opts.HttpOnly || !e.expires.After(j.now()) {
		return "", false
	}
	return e.value, true
}

// Set stores a cookie. A non-positive MaxAge falls back to DefaultMaxAge;
// an empty path falls back to "/".
func (j *Jar) Set(name, value string, opts Options) {
	if j == nil {
		return
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies[name] = entry{
		value:   value,
		expires: j.now().Add(time.Duration(opts.MaxAge) * time.Second),
		opts:    opts,
	}
}

// Delete removes a cookie regardless of its flags.
func (j *Jar) Delete(name string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.cookies, name)
}

// Attach writes all unexpired cookies, HttpOnly included, onto the request.
// This is the transport-side view of the jar; Get intentionally shows less.
func (j *Jar) Attach(req *http.Request) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for name, e := range j.cookies {
		if !e.expires.After(now) {
			continue
		}
		req.AddCookie(&http.Cookie{Name: name, Value: e.value})
	}
}

// Absorb folds Set-Cookie headers from a response into the jar, the way a
// browser would: MaxAge<0 or an expiry in the past deletes the cookie.
func (j *Jar) Absorb(resp *http.Response) {
	if j == nil || resp == nil {
		return
	}
	for _, c := range resp.Cookies() {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(j.now())) {
			j.Delete(c.Name)
			continue
		}
		maxAge := c.MaxAge
		if maxAge == 0 && !c.Expires.IsZero() {
			maxAge = int(time.Until(c.Expires).Seconds())
		}
		j.Set(c.Name, c.Value, Options{
			MaxAge:   maxAge,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: fromHTTPSameSite(c.SameSite),
		})
	}
}

func fromHTTPSameSite(s http.SameSite) SameSite {
	switch s {
	case http.SameSiteStrictMode:
		return SameSiteStrict
	case http.SameSiteNoneMode:
		return SameSiteNone
	default:
		return SameSiteLax
	}
}
