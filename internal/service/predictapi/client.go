// Package predictapi is the resilient client for the prediction backend.
// Read methods never fail: on transport, status, or decode problems they log
// the cause, record a fallback, and return generated data tagged golden so
// callers always have a renderable payload. Mutating calls and the health
// probe fail closed instead. No retries happen here; the periodic refresh is
// the implicit retry.
package predictapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"BitSense/internal/domain/models"
	drepo "BitSense/internal/domain/repository"
	"BitSense/internal/golden"
	xhttp "BitSense/pkg/http"
	"BitSense/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Fallback reasons recorded with the metrics, one per failure class.
const (
	reasonTransport = "transport"
	reasonTimeout   = "timeout"
	reasonStatus    = "status"
	reasonDecode    = "decode"
	reasonShape     = "shape"
)

// Client talks to the prediction API over JSON.
type Client struct {
	http    *xhttp.Client
	golden  *golden.Generator
	log     *logger.Logger
	metrics drepo.Metrics
}

type Option func(*Client)

// WithGenerator swaps the golden data source.
func WithGenerator(g *golden.Generator) Option {
	return func(c *Client) {
		if g != nil {
			c.golden = g
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a client for the given base URL with a fixed per-request
// timeout. A non-positive timeout falls back to 10s.
func New(baseURL string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		http:   xhttp.NewClient(baseURL, xhttp.WithTimeout(timeout)),
		golden: golden.New(),
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.metrics == nil {
		c.metrics = nopMetrics{}
	}
	return c
}

// apiError carries the failure class alongside the cause so fallbacks can be
// labeled precisely.
type apiError struct {
	reason string
	err    error
}

func (e *apiError) Error() string { return e.err.Error() }
func (e *apiError) Unwrap() error { return e.err }

func reasonOf(err error) string {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.reason
	}
	return reasonTransport
}

// call sends one request and decodes the JSON body into dest, classifying
// every failure.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, dest interface{}) error {
	resp, err := c.http.Send(ctx, &xhttp.Request{
		Method: method,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		reason := reasonTransport
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			reason = reasonTimeout
		}
		return &apiError{reason: reason, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &apiError{
			reason: reasonStatus,
			err:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &apiError{reason: reasonDecode, err: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}

// fetch runs one read call and records its latency under the endpoint label.
func fetch[T any](ctx context.Context, c *Client, endpoint, path string, query url.Values) (T, error) {
	var out T
	start := time.Now()
	err := c.call(ctx, xhttp.MethodGet, path, query, &out)
	c.metrics.RecordLatency(endpoint, time.Since(start).Seconds())
	return out, err
}

// errShape flags a 2xx body that decoded but failed its own success flag.
func errShape() error {
	return &apiError{reason: reasonShape, err: errors.New("response flagged unsuccessful")}
}

// fallback logs the failed live fetch and records the substitution.
func (c *Client) fallback(endpoint string, err error) {
	c.log.Warn("live fetch failed, serving golden data",
		logger.String("endpoint", endpoint),
		logger.String("reason", reasonOf(err)),
		logger.Error(err),
	)
	c.metrics.RecordFallback(endpoint, reasonOf(err))
	c.metrics.RecordRequest(endpoint, string(models.SourceGolden))
}

func (c *Client) live(endpoint string) {
	c.metrics.RecordRequest(endpoint, string(models.SourceLive))
}

// nopMetrics keeps the client usable without a recorder attached.
type nopMetrics struct{}

func (nopMetrics) RecordRequest(string, string) {}
func (nopMetrics) RecordFallback(string, string) {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordSnapshot(string, string) {}
func (nopMetrics) RecordRefreshCompleted() {}
