// Package client talks to the remote truth-table service.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dmath-truthtable/internal/observability"
	"dmath-truthtable/internal/truthtable"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a fetch when Options.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// FormulaParam is the query parameter carrying the formula.
	FormulaParam = "formula"

	maxBodyBytes    = 4 << 20
	maxStatusDetail = 256
)

var tracer = otel.Tracer("client")

// Options configures a Client.
type Options struct {
	// BaseURL of the service, e.g. "https://host:8085/". A missing scheme
	// defaults to http.
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default instrumented client.
	HTTPClient *http.Client
}

// Client fetches truth tables. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	timeout time.Duration
	http    *http.Client
	metrics *instruments
}

// New validates opts and returns a Client, defaulting the timeout to 10s.
func New(opts Options) (*Client, error) {
	base, err := ParseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", timeout)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: observability.ClientTransport(nil)}
	}

	m, err := newInstruments()
	if err != nil {
		return nil, err
	}

	return &Client{base: base, timeout: timeout, http: hc, metrics: m}, nil
}

// ParseBaseURL validates a service base URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("base URL is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", raw)
	}
	return u, nil
}

// URL returns the request URL for formula. The formula always travels as an
// encoded query parameter; query parameters already on the base URL are kept.
func (c *Client) URL(formula string) string {
	u := *c.base
	q := u.Query()
	q.Set(FormulaParam, formula)
	u.RawQuery = q.Encode()
	return u.String()
}

// Timeout reports the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Fetch issues one GET for formula and decodes the truth table. Every
// failure is an *Error.
func (c *Client) Fetch(ctx context.Context, formula string) (*truthtable.Response, error) {
	ctx, span := tracer.Start(ctx, "truthtable.fetch",
		trace.WithAttributes(
			attribute.String("truthtable.formula", formula),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	table, err := c.fetch(ctx, formula)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	c.metrics.requests.Add(ctx, 1)
	c.metrics.duration.Record(ctx, elapsed)

	if err != nil {
		kind := KindOf(err)
		c.metrics.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind.String())))

		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())

		logger.Warn("truth table request failed",
			zap.String("kind", kind.String()),
			zap.String("formula", formula),
			zap.Error(err),
			zap.Float64("duration_ms", elapsed),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("truthtable.columns", len(table.Columns)))
	span.SetStatus(codes.Ok, "")

	logger.Debug("truth table received",
		zap.String("formula", formula),
		zap.Int("columns", len(table.Columns)),
		zap.Float64("duration_ms", elapsed),
	)

	return table, nil
}

func (c *Client) fetch(ctx context.Context, formula string) (*truthtable.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(formula), nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, classify(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Body:       detail(body),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if len(body) > maxBodyBytes {
		return nil, &Error{
			Kind: KindMalformed,
			Err:  fmt.Errorf("%w: body exceeds %d bytes", truthtable.ErrMalformed, maxBodyBytes),
		}
	}

	table, err := truthtable.Decode(body)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Err: err}
	}
	return table, nil
}

func classify(ctx context.Context, err error) *Error {
	if cause := ctx.Err(); cause != nil {
		if !errors.Is(err, cause) {
			err = fmt.Errorf("%w: %v", cause, err)
		}
		if errors.Is(cause, context.Canceled) {
			return &Error{Kind: KindCanceled, Err: err}
		}
		return &Error{Kind: KindTimeout, Err: err}
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

func detail(body []byte) string {
	if len(body) > maxStatusDetail {
		body = body[:maxStatusDetail]
	}
	return strings.TrimSpace(string(body))
}
