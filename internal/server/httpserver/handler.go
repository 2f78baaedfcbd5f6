package httpserver

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/talentauth/internal/server/services"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

type meResponse struct {
	User *users.View `json:"user"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in services.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(ctx, w, "register", err)
		return
	}

	session, err := s.auth.Register(ctx, in)
	if err != nil {
		s.fail(ctx, w, "register", err)
		return
	}

	s.logger.Info(ctx, "Registered", "user_id", session.User.ID, "role", session.User.Role)
	s.metrics.AuthRequest("register", "ok")
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in services.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(ctx, w, "login", err)
		return
	}

	session, err := s.auth.Login(ctx, in)
	if err != nil {
		s.fail(ctx, w, "login", err)
		return
	}

	s.logger.Info(ctx, "Logged in", "user_id", session.User.ID)
	s.metrics.AuthRequest("login", "ok")
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := s.auth.Me(ctx)
	if err != nil {
		s.fail(ctx, w, "me", err)
		return
	}

	s.metrics.AuthRequest("me", "ok")
	writeJSON(w, http.StatusOK, meResponse{User: view})
}

// logout is stateless: tokens are not revocable server-side, the client
// discards its copy.
func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	s.metrics.AuthRequest("logout", "ok")
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail answers with the mapped error response. Server errors are logged
// with their cause, which the client never sees.
func (s *HTTPServer) fail(ctx context.Context, w http.ResponseWriter, endpoint string, err error) {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "endpoint", endpoint, "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "endpoint", endpoint, "code", body.Code)
	}
	s.metrics.AuthRequest(endpoint, body.Code)
	writeJSON(w, status, body)
}
