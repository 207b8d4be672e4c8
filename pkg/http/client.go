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
)

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost
)

const defaultClientTimeout = 30 * time.Second

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout caps the total time of each request, dial included.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// Request describes one call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Client is a JSON-first HTTP client bound to one base URL. Bodies are
// marshaled to JSON unless given as raw bytes.
type Client struct {
	base    string
	timeout time.Duration
	headers map[string]string
	client  *http.Client
}

// NewClient builds a client for the given base URL. The trailing slash is
// trimmed so request paths always start with "/".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: defaultClientTimeout,
		headers: map[string]string{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// BaseURL returns the configured base URL without its trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

// Send performs one request and hands back the raw response. Closing the
// body is the caller's job.
func (c *Client) Send(ctx context.Context, r *Request) (*http.Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, r *Request) (*http.Request, error) {
	body, isJSON, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.base+r.Path, body)
	if err != nil {
		return nil, err
	}

	if len(r.Query) > 0 {
		req.URL.RawQuery = r.Query.Encode()
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// encodeBody turns a request body into a reader. Raw bytes pass through
// untouched; anything else goes out as JSON.
func encodeBody(body interface{}) (io.Reader, bool, error) {
	switch v := body.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return bytes.NewReader(v), false, nil
	default:
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, false, fmt.Errorf("marshal body: %w", err)
		}
		return bytes.NewReader(buf), true, nil
	}
}
