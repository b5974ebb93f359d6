// Package carapi is an HTTP client for the /car REST resource.
package carapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/carcli/internal/logging"
	"github.com/studiowebux/carcli/internal/types"
)

// ResourcePath is the collection path relative to the base URL
const ResourcePath = "/car"

// maxBodySize caps how much of a response body is read
const maxBodySize = 4 << 20

// Client talks to the /car API
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches one page of cars matching search
func (c *Client) List(ctx context.Context, page int, search string) (*types.ListResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("searchQuery", search)

	var resp types.ListResponse
	if err := c.do(ctx, http.MethodGet, ResourcePath+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create posts a new car and returns the stored record
func (c *Client) Create(ctx context.Context, draft types.CarDraft) (*types.CarRecord, error) {
	var car types.CarRecord
	if err := c.do(ctx, http.MethodPost, ResourcePath, draft, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// Update replaces the editable fields of car id
func (c *Client) Update(ctx context.Context, id string, draft types.CarDraft) (*types.CarRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("update requires a car id")
	}
	var car types.CarRecord
	if err := c.do(ctx, http.MethodPut, ResourcePath+"/"+url.PathEscape(id), draft, &car); err != nil {
		return nil, err
	}
	if car.ID == "" {
		car.ID = id
	}
	return &car, nil
}

// Delete removes car id
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete requires a car id")
	}
	return c.do(ctx, http.MethodDelete, ResourcePath+"/"+url.PathEscape(id), nil, nil)
}

// do performs a request, decoding a JSON response into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	startTime := time.Now()

	var bodyReader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	if !IsSuccessStatus(resp.StatusCode) {
		return decodeError(resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
