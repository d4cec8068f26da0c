// Package http provides the HTTP transport for the Huwise automation API:
// authentication headers, JSON codecs, and automatic retry with exponential
// backoff on transient failures.
package http

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

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/huwise-io/huwise-client/internal/constants"
	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// maxErrorBodyLength bounds how much of an unparseable error body is kept
// in the error message.
const maxErrorBodyLength = 200

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Response represents an API response with the body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues requests against the automation API. A single retryablehttp
// client carries the shared connection pool; transient failures (connection
// errors, timeouts, 5xx) are retried with doubling backoff, permanent
// failures (4xx) are not.
type Client struct {
	baseURL     string
	authHeader  string
	userAgent   string
	retryClient *retryablehttp.Client
	logger      zerolog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for transport-level logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.retryClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithBaseURL overrides the base URL derived from the configuration.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithUserAgent sets the User-Agent header for all requests.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig overrides the retry budget and backoff window.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout overrides the per-request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport for the portal described by config.
func NewClient(config *huwise.Config, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	retryClient.Logger = &leveledLogger{logger: log.Logger}

	client := &Client{
		baseURL:     config.BaseURL(),
		authHeader:  config.AuthorizationHeader(),
		retryClient: retryClient,
		logger:      log.Logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a single API request and reads the full response body.
// Non-2xx responses return both the response and an *huwise.APIError so
// callers can still inspect status and headers.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// Applied after caller headers so they can never override it.
	httpReq.Header.Set("Authorization", c.authHeader)

	start := time.Now()

	resp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status_code", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return response, parseAPIError(resp.StatusCode, data)
	}

	return response, nil
}

// Get makes a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post makes a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put makes a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch makes a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete makes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// checkRetry retries request errors (connection failures, timeouts) and
// 5xx responses. 4xx responses signal a request error, not a transient
// condition, and are never retried.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp != nil && resp.StatusCode >= http.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// parseAPIError builds an APIError from a non-2xx response body. The
// automation API reports errors as JSON objects; the raw body is kept as a
// fallback for anything else.
func parseAPIError(statusCode int, body []byte) error {
	apiErr := &huwise.APIError{StatusCode: statusCode}

	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}

	err := json.Unmarshal(body, &payload)
	if err == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		case payload.Error != "":
			apiErr.Message = payload.Error
		}
	}

	if apiErr.Message == "" {
		raw := strings.TrimSpace(string(body))
		if len(raw) > maxErrorBodyLength {
			raw = raw[:maxErrorBodyLength]
		}

		apiErr.Message = raw
	}

	return apiErr
}

// leveledLogger adapts zerolog to retryablehttp's LeveledLogger interface.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}
