package tokensvc

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avorobjovs/demoboard/internal/common"
)

func TestRouteGuard(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RouteGuard(next)

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		wantCode     int
		wantLocation string
	}{
		{name: "anonymous users section", path: "/users", wantCode: http.StatusFound, wantLocation: "/login"},
		{name: "anonymous posts subpath", path: "/posts/42", wantCode: http.StatusFound, wantLocation: "/login"},
		{name: "anonymous books section", path: "/books", wantCode: http.StatusFound, wantLocation: "/login"},
		{name: "anonymous login page", path: "/login", wantCode: http.StatusOK},
		{name: "anonymous auth endpoint", path: "/auth/refresh", wantCode: http.StatusOK},
		{name: "authenticated users section", path: "/users", withCookie: true, wantCode: http.StatusOK},
		{name: "authenticated login page", path: "/login", withCookie: true, wantCode: http.StatusFound, wantLocation: "/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withCookie {
				req.AddCookie(&http.Cookie{Name: common.AccessTokenCookieName, Value: "access_1_abc"})
			}
			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}
