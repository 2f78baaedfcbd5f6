package client

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/talentauth/internal/common"
)

// bearerTransport adds "Authorization: Bearer <token>" to every request
// when a token is stored, and reports a 401 on such a request to the
// unauthorized handler.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource

	mu             sync.RWMutex
	onUnauthorized func(*http.Request)
}

func (t *bearerTransport) setUnauthorizedHandler(fn func(*http.Request)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUnauthorized = fn
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Load(req.Context())
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}

	if token != "" {
		req = req.Clone(req.Context())
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if token != "" && resp.StatusCode == http.StatusUnauthorized {
		t.mu.RLock()
		fn := t.onUnauthorized
		t.mu.RUnlock()
		if fn != nil {
			fn(req)
		}
	}

	return resp, nil
}
