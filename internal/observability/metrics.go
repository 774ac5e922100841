package observability

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// appRegistry holds the OTel instruments bridged to Prometheus. It is
// replaced on every InitMetrics so repeated initialization never collides.
var appRegistry atomic.Pointer[prometheus.Registry]

// InitMetrics installs the global meter provider. Instruments are always
// readable on /metrics; exportOTLP also pushes them to the OTLP endpoint.
func InitMetrics(ctx context.Context, exportOTLP bool) (func(context.Context) error, error) {

	reg := prometheus.NewRegistry()
	promReader, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promReader),
	}

	if exportOTLP {
		exporter, err := otlpmetrichttp.New(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	provider := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(provider)
	appRegistry.Store(reg)

	return provider.Shutdown, nil
}

// PrometheusHandler serves the Go runtime metrics together with the
// application instruments registered through InitMetrics.
func PrometheusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
		if reg := appRegistry.Load(); reg != nil {
			gatherers = append(gatherers, reg)
		}
		promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
