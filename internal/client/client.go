// Package client is a typed HTTP client for the couture API. The terminal
// storefront uses it for the catalog, checkout and admin console.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/pkg/response"

	"go.uber.org/zap"
)

// TokenSource hands out a usable admin access token.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.Named("client")
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.L().Named("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a copy of c that authenticates admin calls with ts.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

type envelope struct {
	Success bool                     `json:"success"`
	Data    json.RawMessage          `json:"data"`
	Meta    *response.PaginationMeta `json:"meta"`
	Error   *response.ErrorDetail    `json:"error"`
	Message string                   `json:"message"`
}

type call struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	header      http.Header
	admin       bool
}

func jsonCall(method, path string, v any) (call, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return call{}, err
	}
	return call{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json"}, nil
}

func (c *Client) send(ctx context.Context, cl call) (*http.Response, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return nil, err
	}
	for k, vs := range cl.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Accept", "application/json")

	if cl.admin {
		if c.tokens == nil {
			return nil, apperror.New(apperror.CodeUnauthorized, "Unauthorized", http.StatusUnauthorized)
		}
		tok, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	return resp, nil
}

// do sends cl and decodes the envelope's data into out. Error envelopes
// come back as *apperror.AppError so callers can match the server's
// sentinels with errors.Is.
func (c *Client) do(ctx context.Context, cl call, out any) (*response.PaginationMeta, error) {
	resp, err := c.send(ctx, cl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, statusError(resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: decode response: %w", cl.method, cl.path, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		c.logger.Debug("api error",
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Int("status", resp.StatusCode),
		)
		if env.Error != nil {
			return nil, apperror.New(env.Error.Code, env.Error.Message, resp.StatusCode)
		}
		return nil, statusError(resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%s %s: decode data: %w", cl.method, cl.path, err)
		}
	}
	return env.Meta, nil
}

func statusError(status int) error {
	code := apperror.CodeInternalError
	switch status {
	case http.StatusUnauthorized:
		code = apperror.CodeUnauthorized
	case http.StatusForbidden:
		code = apperror.CodeForbidden
	case http.StatusNotFound:
		code = apperror.CodeNotFound
	case http.StatusTooManyRequests:
		code = apperror.CodeTooManyRequests
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		code = apperror.CodeUnavailable
	}
	return apperror.New(code, http.StatusText(status), status)
}
