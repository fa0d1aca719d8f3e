package tokensvc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avorobjovs/demoboard/internal/logging"
	"github.com/avorobjovs/demoboard/internal/tokensvc/config"
)

// Server wraps an http.Server with the token routes and guard mounted.
type Server struct {
	inner *http.Server
}

// NewServer wires up the handlers, guard and logging middleware.
func NewServer(cfg config.Config, logger logging.Logger) *Server {
	mux := http.NewServeMux()
	NewHandler(cfg, logger).Register(mux)

	for _, section := range []string{LoginPath, "/users", "/posts", "/books"} {
		mux.HandleFunc(section, sectionPage(section))
	}

	handler := RequestLogging(logger, RouteGuard(mux))

	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// sectionPage serves a minimal landing page for a dashboard section. The
// real section content lives in the client; these exist so the route guard
// has concrete targets to redirect between.
func sectionPage(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "demoboard section %s\n", section)
	}
}

// Start begins serving HTTP traffic. It blocks until the server stops.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
