package tokensvc

import (
	"net/http"
	"strings"

	"github.com/avorobjovs/demoboard/internal/common"
)

// Section paths served behind the guard.
const (
	LoginPath   = "/login"
	DefaultPath = "/users"
)

var protectedPrefixes = []string{"/users", "/posts", "/books"}

// RouteGuard redirects unauthenticated requests for protected sections to
// the login page, and authenticated requests for the login page to the
// default section. Authentication here means only that an access-token
// cookie is present; the token itself is never inspected.
func RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(common.AccessTokenCookieName)
		authenticated := err == nil

		switch {
		case !authenticated && isProtectedPath(r.URL.Path):
			http.Redirect(w, r, LoginPath, http.StatusFound)
		case authenticated && r.URL.Path == LoginPath:
			http.Redirect(w, r, DefaultPath, http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func isProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
