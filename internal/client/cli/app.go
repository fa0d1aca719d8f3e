package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/avorobjovs/demoboard/internal/client/api"
	"github.com/avorobjovs/demoboard/internal/client/config"
	"github.com/avorobjovs/demoboard/internal/client/localdb"
	"github.com/avorobjovs/demoboard/internal/client/repositories/favorites"
	"github.com/avorobjovs/demoboard/internal/client/repositories/localposts"
	"github.com/avorobjovs/demoboard/internal/client/repositories/session"
	"github.com/avorobjovs/demoboard/internal/client/repositories/usersoverlay"
	"github.com/avorobjovs/demoboard/internal/client/services"
	"github.com/avorobjovs/demoboard/internal/client/transport"
	"github.com/avorobjovs/demoboard/internal/cookiejar"
	"github.com/avorobjovs/demoboard/internal/dbx"
	"github.com/avorobjovs/demoboard/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the whole client together: the cookie jar, the intercepted HTTP
// path, the local overlay database, the services, and the REPL on top.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	auth  *services.AuthService
	posts *services.PostsService
	users *services.UsersService
	books *services.BooksService

	reader *bufio.Reader
}

// NewApp builds a ready-to-run client. The interceptor is bound to the
// session store both ways: the store refreshes tokens for it, and a failed
// refresh forces a logout.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	db, err := localdb.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	endpoints, err := remoteEndpoints(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	jar := cookiejar.New()
	httpClient := &http.Client{Timeout: c.HTTPTimeout}
	interceptor := transport.New(httpClient, jar, endpoints, logger)

	directory := api.NewDirectory(interceptor, c.DirectoryBaseURL, c.DirectoryAPIKey)
	board := api.NewBoard(interceptor, c.BoardBaseURL)
	library := api.NewLibrary(interceptor, c.LibraryBaseURL)
	tokens := api.NewTokens(interceptor, c.TokenServiceURL)

	localRepo := localposts.NewSQLiteRepository(db)
	overlayRepo := usersoverlay.NewSQLiteRepository(db)
	favsRepo := favorites.NewSQLiteRepository(db)
	sessionRepo := session.NewSQLiteRepository(db)

	auth := services.NewAuthService(directory, tokens, jar, sessionRepo,
		[]services.Clearer{overlayWipe{db: db}}, logger)

	interceptor.BindSession(auth, func(ctx context.Context) {
		_ = auth.Logout(ctx)
		fmt.Println("Session expired, please log in again.")
	})

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		auth:   auth,
		posts:  services.NewPostsService(board, localRepo, favsRepo, logger),
		users:  services.NewUsersService(directory, overlayRepo),
		books:  services.NewBooksService(library, logger),
		reader: bufio.NewReader(os.Stdin),
	}
	return app, nil
}

// overlayWipe clears every per-session overlay store in one transaction, so
// a logout never leaves a half-wiped overlay behind.
type overlayWipe struct {
	db *sql.DB
}

func (o overlayWipe) ClearUserData(ctx context.Context) error {
	return dbx.WithTx(ctx, o.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := localposts.NewSQLiteRepository(tx).ClearUserData(ctx); err != nil {
			return err
		}
		if err := usersoverlay.NewSQLiteRepository(tx).ClearUserData(ctx); err != nil {
			return err
		}
		return favorites.NewSQLiteRepository(tx).ClearUserData(ctx)
	})
}

// Run restores any persisted session and hands control to the REPL. It
// blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.auth.InitializeAuth(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.State() == services.StateAuthenticated
}

func (a *App) status() string {
	if user := a.auth.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s %s)", user.Email, a.auth.Role())
	}
	return ""
}

// remoteEndpoints extracts the hosts the interceptor's classification rules
// apply to.
func remoteEndpoints(c *config.Config) (transport.Endpoints, error) {
	directory, err := url.Parse(c.DirectoryBaseURL)
	if err != nil {
		return transport.Endpoints{}, fmt.Errorf("invalid directory URL: %w", err)
	}
	board, err := url.Parse(c.BoardBaseURL)
	if err != nil {
		return transport.Endpoints{}, fmt.Errorf("invalid board URL: %w", err)
	}
	return transport.Endpoints{DirectoryHost: directory.Host, BoardHost: board.Host}, nil
}
