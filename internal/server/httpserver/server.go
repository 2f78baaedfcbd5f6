// Package httpserver exposes the authentication endpoints over HTTP/JSON
// and hosts the auth gate that protects identity-bearing routes.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/logging"
	"github.com/dmitrijs2005/talentauth/internal/server/auth"
	"github.com/dmitrijs2005/talentauth/internal/server/metrics"
	"github.com/dmitrijs2005/talentauth/internal/server/services"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

// AuthService is implemented by *services.AuthService.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.Session, error)
	Login(ctx context.Context, in services.LoginInput) (*services.Session, error)
	Me(ctx context.Context) (*users.View, error)
	Authenticate(ctx context.Context, userID string) (*users.User, error)
}

// TokenVerifier is implemented by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type HTTPServer struct {
	address string
	auth    AuthService
	gate    *Gate
	metrics *metrics.Metrics
	logger  logging.Logger
	router  *mux.Router
}

func NewHTTPServer(addr string, l logging.Logger, svc AuthService, tokens TokenVerifier, m *metrics.Metrics) *HTTPServer {
	if m == nil {
		m = metrics.New()
	}
	logger := l.With("module", "http_server")

	s := &HTTPServer{
		address: addr,
		auth:    svc,
		gate:    NewGate(tokens, svc, logger, m),
		metrics: m,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *HTTPServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/auth").Subrouter()
	api.HandleFunc("/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	api.Handle("/me", s.gate.Middleware(http.HandlerFunc(s.me))).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "not_found", Message: "Not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Code: "method_not_allowed", Message: "Method not allowed"})
	})

	return r
}

// Handler returns the full handler chain, including panic recovery.
func (s *HTTPServer) Handler() http.Handler {
	return s.recoverMiddleware(s.router)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
