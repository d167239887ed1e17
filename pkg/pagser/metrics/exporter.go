package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// NewPrometheusProvider builds a meter provider whose readings are exposed through a dedicated
// prometheus registry.
func NewPrometheusProvider(appName, appVersion string) (*metric.MeterProvider, *prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry), otelprom.WithoutScopeInfo())
	if err != nil {
		return nil, nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", appName),
		attribute.String("service.version", appVersion),
	)

	provider := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))

	return provider, registry, nil
}

// GetHandler serves the registry in the prometheus text format at /metrics.
func GetHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	return mux
}
