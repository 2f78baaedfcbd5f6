// Package server assembles the authentication server: storage backend,
// credential store, token service and HTTP endpoints, and runs it until an
// OS signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/talentauth/internal/logging"
	"github.com/dmitrijs2005/talentauth/internal/server/auth"
	"github.com/dmitrijs2005/talentauth/internal/server/config"
	"github.com/dmitrijs2005/talentauth/internal/server/httpserver"
	"github.com/dmitrijs2005/talentauth/internal/server/metrics"
	"github.com/dmitrijs2005/talentauth/internal/server/services"
	"github.com/dmitrijs2005/talentauth/internal/server/shared/db"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	server *httpserver.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT secret is not configured, signing with the well-known default; set JWT_SECRET")
	}

	repos, err := db.NewRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := users.NewStore(repos.Users(), users.NewBcryptHasher(c.PasswordHashCost))
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("credential store init error: %w", err)
	}

	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	svc := services.NewAuthService(store, tokens)
	srv := httpserver.NewHTTPServer(c.EndpointAddrHTTP, logger, svc, tokens, metrics.New())

	return &App{config: c, logger: logger, repos: repos, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
