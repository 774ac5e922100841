package web

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	submissionCounter metric.Int64Counter
	errorCounter      metric.Int64Counter
	rowsHistogram     metric.Int64Histogram
)

// InitMetrics registers the web front end's OTel instruments.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("web")

	var err error

	submissionCounter, err = meter.Int64Counter("truthtable.web.submissions.total",
		metric.WithDescription("Total number of formulas submitted through the web front end"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return fmt.Errorf("creating submission counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("truthtable.web.errors.total",
		metric.WithDescription("Total number of failed submissions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	rowsHistogram, err = meter.Int64Histogram("truthtable.web.rows",
		metric.WithDescription("Number of rows in served truth tables"),
		metric.WithUnit("{row}"),
		metric.WithExplicitBucketBoundaries(1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024),
	)
	if err != nil {
		return fmt.Errorf("creating rows histogram: %w", err)
	}

	return nil
}
