package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/dmitrijs2005/talentauth/internal/logging"
	"github.com/dmitrijs2005/talentauth/internal/server/metrics"
	"github.com/dmitrijs2005/talentauth/internal/server/services"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

type GateOutcome int

const (
	GateAllowed GateOutcome = iota
	GateMissingCredential
	GateInvalidToken
	GateUnknownUser
	GateFailed
)

func (o GateOutcome) String() string {
	switch o {
	case GateAllowed:
		return "allowed"
	case GateMissingCredential:
		return "missing_credential"
	case GateInvalidToken:
		return "invalid_token"
	case GateUnknownUser:
		return "unknown_user"
	case GateFailed:
		return "failed"
	}
	return "unknown"
}

// GateResult is the decision for one request. User is set only when
// Outcome is GateAllowed; Err carries the cause of any other outcome.
type GateResult struct {
	Outcome GateOutcome
	User    *users.User
	Err     error
}

// UserResolver loads the user a verified token names.
type UserResolver interface {
	Authenticate(ctx context.Context, userID string) (*users.User, error)
}

// Gate authenticates requests: extract bearer token, verify it, resolve
// the user. It never writes to the store.
type Gate struct {
	tokens  TokenVerifier
	users   UserResolver
	logger  logging.Logger
	metrics *metrics.Metrics
}

func NewGate(tokens TokenVerifier, resolver UserResolver, l logging.Logger, m *metrics.Metrics) *Gate {
	return &Gate{tokens: tokens, users: resolver, logger: l.With("component", "auth_gate"), metrics: m}
}

// Check runs the gate against r without writing a response.
func (g *Gate) Check(r *http.Request) GateResult {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return GateResult{Outcome: GateMissingCredential, Err: errors.New("authorization header missing or not bearer")}
	}

	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	if token == "" {
		return GateResult{Outcome: GateMissingCredential, Err: errors.New("empty bearer token")}
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return GateResult{Outcome: GateInvalidToken, Err: err}
	}

	user, err := g.users.Authenticate(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return GateResult{Outcome: GateUnknownUser, Err: err}
		}
		return GateResult{Outcome: GateFailed, Err: err}
	}

	return GateResult{Outcome: GateAllowed, User: user}
}

// Middleware attaches the authenticated user to the request context, or
// answers 401. The three rejection causes are indistinguishable to the
// caller; only logs and metrics tell them apart.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := g.Check(r)
		g.metrics.GateDecision(res.Outcome.String())

		switch res.Outcome {
		case GateAllowed:
			next.ServeHTTP(w, r.WithContext(services.WithUser(r.Context(), res.User)))
		case GateFailed:
			g.logger.Error(r.Context(), "user lookup failed", "error", res.Err)
			writeError(w, res.Err)
		default:
			g.logger.Info(r.Context(), "request rejected", "outcome", res.Outcome.String(), "reason", res.Err)
			writeError(w, common.ErrUnauthenticated)
		}
	})
}
