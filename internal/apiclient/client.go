// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apiclient is the single gateway to the wellness backend REST API.
// It attaches the visitor's bearer token, normalizes failures into *Error
// values and reacts to 401 responses by expiring the visitor's session
// exactly once. Requests are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error body is read for the message.
const maxErrorBody = 64 << 10

// Credentials supplies the bearer token for a visitor and clears it when
// the backend rejects it.
type Credentials interface {
	// Token returns the current token, or "" when signed out.
	Token() string
	// Expire clears the stored session if token is still the current one
	// and reports whether this call cleared it.
	Expire(token string) bool
}

// Doer performs one API call. path is relative to the base URL. body, when
// non-nil, is sent as JSON; out, when non-nil, receives the decoded JSON
// response.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Client holds the shared transport. Use For to bind a visitor's
// credentials.
type Client struct {
	base      string
	http      *http.Client
	onExpired func(ctx context.Context)
	tracer    trace.Tracer
	metrics   *clientMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithOnExpired registers the hook fired once per expired session.
func WithOnExpired(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithTracerProvider sets the tracer provider. The global provider is used
// otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(instrumentationName) }
}

// WithMeterProvider sets the meter provider. The global provider is used
// otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Client) { c.metrics = newClientMetrics(mp) }
}

// New creates a client for the backend at baseURL. An empty baseURL sends
// paths as given, for deployments that proxy the API on the same origin.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	if c.metrics == nil {
		c.metrics = newClientMetrics(otel.GetMeterProvider())
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base
}

// For returns a Doer that authenticates as creds. A nil creds sends
// anonymous requests.
func (c *Client) For(creds Credentials) Doer {
	return &bound{client: c, creds: creds}
}

// Do sends an anonymous request.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, nil, method, path, body, out)
}

type bound struct {
	client *Client
	creds  Credentials
}

func (b *bound) Do(ctx context.Context, method, path string, body, out any) error {
	return b.client.do(ctx, b.creds, method, path, body, out)
}

func (c *Client) do(ctx context.Context, creds Credentials, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "api "+method, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	start := time.Now()
	status, err := c.send(ctx, creds, method, path, body, out)
	elapsed := time.Since(start)

	c.metrics.record(ctx, method, status, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	slog.Debug("api request", "method", method, "path", path, "status", status, "duration", elapsed)
	return err
}

// send performs the exchange and returns the response status (0 when no
// response arrived).
func (c *Client) send(ctx context.Context, creds Credentials, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	var token string
	if creds != nil {
		token = creds.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("apiclient: %s %s: %w: %w", method, path, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, resp.Header.Get("Content-Type"), raw),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.expire(ctx, creds, token)
		}
		return resp.StatusCode, apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || !isJSON(resp.Header.Get("Content-Type")) {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("apiclient: read %s %s: %w: %w", method, path, ErrTransport, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

// expire clears the session that sent token. Concurrent 401s for the same
// token race on Expire and only the winner fires the hook.
func (c *Client) expire(ctx context.Context, creds Credentials, token string) {
	if creds == nil || token == "" {
		return
	}
	if !creds.Expire(token) {
		return
	}
	slog.Info("api session expired")
	if c.onExpired != nil {
		c.onExpired(ctx)
	}
}
