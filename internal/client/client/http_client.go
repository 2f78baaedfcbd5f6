package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/client/models"
)

const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	transport *bearerTransport
}

// NewHTTPClient returns a client for the server at baseURL. tokens is
// consulted on every request; timeout bounds each request.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration) *HTTPClient {
	return newHTTPClient(baseURL, tokens, timeout, http.DefaultTransport)
}

func newHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, base http.RoundTripper) *HTTPClient {
	t := &bearerTransport{base: base, tokens: tokens}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Transport: t, Timeout: timeout},
		transport: t,
	}
}

// SetUnauthorizedHandler registers fn to run when a request that carried a
// token is answered with 401.
func (c *HTTPClient) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	if fn == nil {
		c.transport.setUnauthorizedHandler(nil)
		return
	}
	c.transport.setUnauthorizedHandler(func(r *http.Request) { fn(r.Context()) })
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var body struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &body); err != nil {
		return nil, err
	}
	if body.User == nil {
		return nil, errors.New("me: response has no user")
	}
	return body.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
