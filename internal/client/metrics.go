package client

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type instruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

// newInstruments registers the client's OTel instruments on the global
// meter provider.
func newInstruments() (*instruments, error) {
	meter := otel.Meter("client")

	requests, err := meter.Int64Counter("truthtable.client.requests.total",
		metric.WithDescription("Total number of truth table requests sent"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	duration, err := meter.Float64Histogram("truthtable.client.request.duration",
		metric.WithDescription("Round trip time of truth table requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	errs, err := meter.Int64Counter("truthtable.client.errors.total",
		metric.WithDescription("Total number of failed truth table requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	return &instruments{requests: requests, duration: duration, errors: errs}, nil
}
