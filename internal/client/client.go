// Package client reads the environment backend's status endpoints.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"envmanager/internal/api"
	"envmanager/internal/fsutil"
	"envmanager/internal/logging"
)

const (
	// RequestIDHeader correlates both requests of one dialog refresh in backend logs.
	RequestIDHeader = "X-Request-ID"
	maxBodyBytes    = 8 << 20
	// fallbackFailure is used when a non-2xx body is not a structured error.
	fallbackFailure = "Failed to fetch"
)

// Client issues read-only GETs against the backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *logging.Logger
	userAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, logger *logging.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     logger,
		userAgent:  "envmanager",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Result is the outcome of one request that reached the backend.
// Exactly one of Data and Failure is set.
type Result[T any] struct {
	StatusCode int
	Data       *T
	Failure    *api.ErrorPayload
}

// OK reports whether the backend answered 2xx.
func (r Result[T]) OK() bool {
	return r.Data != nil
}

// TransportError means the request never produced a usable response:
// the connection failed or a 2xx body could not be decoded.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Runtime fetches GET /env-manager/runtime.
func (c *Client) Runtime(ctx context.Context, requestID string) (Result[api.RuntimeResponse], error) {
	return getJSON[api.RuntimeResponse](ctx, c, api.RuntimePath, requestID)
}

// Environments fetches GET /env-manager/environments.
func (c *Client) Environments(ctx context.Context, requestID string) (Result[api.EnvironmentsResponse], error) {
	return getJSON[api.EnvironmentsResponse](ctx, c, api.EnvironmentsPath, requestID)
}

// Status pairs the two endpoint results of one refresh.
type Status struct {
	Runtime      Result[api.RuntimeResponse]
	Environments Result[api.EnvironmentsResponse]
}

// FetchStatus issues both reads concurrently and returns once both settle.
// A non-2xx answer is part of the Status; only a TransportError is returned as error.
func (c *Client) FetchStatus(ctx context.Context, requestID string) (Status, error) {
	var status Status

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := c.Runtime(gctx, requestID)
		status.Runtime = res
		return err
	})
	g.Go(func() error {
		res, err := c.Environments(gctx, requestID)
		status.Environments = res
		return err
	})

	if err := g.Wait(); err != nil {
		return Status{}, err
	}
	return status, nil
}

// Version fetches the backend's plain-text version.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, code, err := c.get(ctx, api.VersionPath, "")
	if err != nil {
		return "", err
	}
	if code < 200 || code > 299 {
		return "", fmt.Errorf("version endpoint returned %d", code)
	}
	return strings.TrimSpace(string(body)), nil
}

func getJSON[T any](ctx context.Context, c *Client, path, requestID string) (Result[T], error) {
	body, code, err := c.get(ctx, path, requestID)
	if err != nil {
		return Result[T]{}, err
	}

	res := Result[T]{StatusCode: code}

	if code >= 200 && code <= 299 {
		var data T
		if err := json.Unmarshal(body, &data); err != nil {
			c.logger.Warn("client.response.decode_failed", "Backend returned an undecodable body", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return Result[T]{}, &TransportError{Path: path, Err: fmt.Errorf("decode %s response: %w", path, err)}
		}
		res.Data = &data
		return res, nil
	}

	var failure api.ErrorPayload
	if err := json.Unmarshal(body, &failure); err != nil {
		failure = api.ErrorPayload{Error: fallbackFailure}
	}
	res.Failure = &failure

	c.logger.Warn("client.response.error_status", "Backend answered with an error status", map[string]interface{}{
		"path":   path,
		"status": code,
		"error":  failure.Error,
	})
	return res, nil
}

func (c *Client) get(ctx context.Context, path, requestID string) ([]byte, int, error) {
	target := c.baseURL.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, &TransportError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("client.request.failed", "Backend request failed", map[string]interface{}{
			"path":       path,
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, 0, &TransportError{Path: path, Err: err}
	}
	defer fsutil.CloseWithError(resp.Body.Close, c.logger, "response body")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0, &TransportError{Path: path, Err: fmt.Errorf("read %s response: %w", path, err)}
	}

	c.logger.Debug("client.request.done", "Backend request completed", map[string]interface{}{
		"path":        path,
		"request_id":  requestID,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return body, resp.StatusCode, nil
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
