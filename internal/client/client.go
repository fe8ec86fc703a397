// Package client talks to the expense API. GET responses are cached and every
// mutation invalidates the cached resources it can affect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caszofficial/Expense-Control/internal/cache"
)

const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 5 * time.Minute
)

// Cache key prefixes. Category changes also invalidate expenses because
// listings carry the category name and color.
const (
	prefixCategories = "/categories"
	prefixExpenses   = "/expenses"
)

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.LRU[[]byte]
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache sizes the response cache. A size below one disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		if size < 1 {
			c.cache = nil
			return
		}

		c.cache = cache.New[[]byte](size, ttl)
	}
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:3001/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cache.New[[]byte](DefaultCacheSize, DefaultCacheTTL),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is an error envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}

	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}

	return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.StatusCode, strings.Join(parts, "; "))
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []FieldError    `json:"errors"`
}

// Invalidate drops every cached response.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

func (c *Client) invalidate(prefixes ...string) {
	if c.cache == nil {
		return
	}

	for _, p := range prefixes {
		c.cache.DeletePrefix(p)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			return decodeData(data, out)
		}
	}

	data, err := c.do(ctx, http.MethodGet, key, nil)
	if err != nil {
		return err
	}

	if c.cache != nil {
		c.cache.Set(key, data)
	}

	return decodeData(data, out)
}

// send performs a mutation and invalidates the given cache prefixes once the
// server accepted it.
func (c *Client) send(ctx context.Context, method, path string, body, out any, invalidates ...string) error {
	var payload io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		payload = bytes.NewReader(b)
	}

	data, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	c.invalidate(invalidates...)

	if out == nil {
		return nil
	}

	return decodeData(data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) roundTrip(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding %s %s response (HTTP %d): %w", req.Method, req.URL.Path, resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || env.Status != "success" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}

	return env.Data, nil
}

func decodeData(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}

	return nil
}
