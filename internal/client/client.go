// Package client implements the HTTP client role: typed helpers for
// issuing JSON requests against the echo server and decoding results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"restecho/internal/logging"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 1 << 20 // 1 MiB

// Client is an HTTP client for the echo server. Transport failures are
// returned as errors; HTTP error statuses are not — callers compare the
// response status against what they expect.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logging.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logging.Logger
}

// Response is the decoded-enough result of one call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeJSON unmarshals the response body into target.
func (r *Response) DecodeJSON(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// APIError decodes the server's {error, details} envelope. It returns
// nil for non-error statuses or undecodable bodies.
func (r *Response) APIError() *APIError {
	if r.StatusCode < 400 {
		return nil
	}

	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(r.Body, &payload); err != nil || payload.Error == "" {
		return &APIError{StatusCode: r.StatusCode, Message: string(r.Body)}
	}

	return &APIError{
		StatusCode: r.StatusCode,
		Message:    payload.Error,
		Details:    payload.Details,
	}
}

// APIError represents a structured error response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Message)
}

// New creates a client for the server at opts.BaseURL.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Client{
		baseURL: opts.BaseURL,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

// Do performs one HTTP request. A non-nil body is JSON-encoded. Raw
// bodies (e.g. deliberately malformed payloads) go through DoRaw.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (*Response, error) {
	var raw []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		raw = data
	}
	return c.DoRaw(ctx, method, path, query, raw)
}

// DoRaw performs one HTTP request with a pre-encoded body.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values, body []byte) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "restecho-client/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("HTTP call completed", logging.Fields{
		"method": method,
		"url":    u.String(),
		"status": resp.StatusCode,
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// OptionsCall performs an OPTIONS request.
func (c *Client) OptionsCall(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodOptions, path, nil, nil)
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
