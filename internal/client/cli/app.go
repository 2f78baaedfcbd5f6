package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/client/client"
	"github.com/dmitrijs2005/talentauth/internal/client/config"
	"github.com/dmitrijs2005/talentauth/internal/client/models"
	"github.com/dmitrijs2005/talentauth/internal/client/session"
	"github.com/dmitrijs2005/talentauth/internal/filex"
	"github.com/dmitrijs2005/talentauth/internal/logging"
)

// sessionManager is the part of session.Manager the CLI uses.
type sessionManager interface {
	Start(ctx context.Context)
	Ready() <-chan struct{}
	State() session.State
	User() (*models.User, bool)
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, in session.SignUpInput) error
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) (*models.User, error)
}

type savedAtSource interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}

type App struct {
	config  *config.Config
	manager sessionManager
	tokens  savedAtSource
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database at c.SessionDBPath, creating its
// directory if needed, and wires the HTTP client and session manager
// around it. The caller runs the app with Run.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if _, err := filex.EnsureParentDir(c.SessionDBPath); err != nil {
		return nil, fmt.Errorf("error preparing session database: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	a := &App{
		config: c,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	store := session.NewMetadataTokenStore(db)
	hc := client.NewHTTPClient(c.ServerURL, store, c.RequestTimeout)
	m := session.NewManager(hc, store, a.notifier(), newLogger(c.Verbose))
	hc.SetUnauthorizedHandler(m.Invalidate)

	a.manager = m
	a.tokens = store
	return a, nil
}

func newLogger(verbose bool) logging.Logger {
	if !verbose {
		return logging.NewNopLogger()
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h))
}

// notifier prints session notifications. It reads a.out at call time so
// tests can redirect output after construction.
func (a *App) notifier() session.Notifier {
	return session.NotifierFuncs{
		OnSuccess: func(msg string) { fmt.Fprintln(a.out, msg) },
		OnFailure: func(msg string) { fmt.Fprintln(a.out, "Error:", msg) },
	}
}

// Run restores the stored session and runs the REPL until the user exits
// or ctx is cancelled. The session database is closed on return.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to talentauth CLI (type 'help' for commands)")

	a.manager.Start(ctx)
	select {
	case <-a.manager.Ready():
	case <-ctx.Done():
		return
	}

	if u, ok := a.manager.User(); ok {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Email)
	}

	runREPL(ctx, a, a.prompt, a.reader, a.out)
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.manager.State() == session.StateAuthenticated
}

func (a *App) prompt() string {
	if u, ok := a.manager.User(); ok {
		return fmt.Sprintf("(%s %s)", u.Email, u.Role)
	}
	return fmt.Sprintf("(%s)", a.manager.State())
}
