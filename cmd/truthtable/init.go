package main

import (
	"context"
	"errors"

	"dmath-truthtable/internal/config"
	"dmath-truthtable/internal/observability"
)

// initTelemetry installs the meter provider behind /metrics, starts OTLP
// trace, metric and log export when enabled and returns a function flushing
// all of them.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	starts := []func(context.Context) (func(context.Context) error, error){
		func(ctx context.Context) (func(context.Context) error, error) {
			return observability.InitMetrics(ctx, cfg.TelemetryEnabled)
		},
	}
	if cfg.TelemetryEnabled {
		starts = append(starts, observability.InitTracing, observability.InitLogging)
	}

	for _, start := range starts {
		stop, err := start(ctx)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, stop)
	}

	return shutdown, nil
}
