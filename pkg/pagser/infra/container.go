/*
Package infra provides the Container that holds the process wide dependencies of pagser:
the logger, the metrics manager and the SQL connection pool. A single container is built at
startup and handed to every server and handler.
*/
package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/datasource"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql"
	"github.com/sllt/pagser/pkg/pagser/logging"
	"github.com/sllt/pagser/pkg/pagser/metrics"
)

// Container is a collection of all common application level concerns.
type Container struct {
	logging.Logger

	appName    string
	appVersion string

	metricsManager metrics.Manager
	registry       prometheus.Gatherer
	closers        []func(context.Context) error

	SQL *sql.DB
}

// NewContainer builds the container from configuration. The SQL pool is prepared but not dialed.
func NewContainer(conf config.Config, version string) (*Container, error) {
	c := &Container{
		appName:    conf.GetOrDefault("APP_NAME", "pagser"),
		appVersion: version,
	}

	c.Logger = newLogger(conf, c.appName)

	c.Debug("Container is being created")

	provider, registry, err := metrics.NewPrometheusProvider(c.appName, c.appVersion)
	if err != nil {
		return nil, fmt.Errorf("creating metrics provider: %w", err)
	}

	otel.SetMeterProvider(provider)

	c.registry = registry
	c.closers = append(c.closers, provider.Shutdown)
	c.metricsManager = metrics.NewMetricsManager(provider.Meter(c.appName), c.Logger)

	registerFrameworkMetrics(c.metricsManager)

	c.SQL, err = sql.NewSQL(conf, c.Logger, c.metricsManager)
	if err != nil {
		return nil, errors.Join(err, c.Close(context.Background()))
	}

	return c, nil
}

func newLogger(conf config.Config, appName string) logging.Logger {
	level := logging.GetLevelFromString(conf.Get("LOG_LEVEL"))

	dir := conf.Get("LOG_FILE_DIR")
	if dir == "" {
		return logging.NewLogger(level)
	}

	file, err := logging.NewRollingFile(dir, appName)
	if err != nil {
		l := logging.NewLogger(level)
		l.Errorf("file logging disabled: %v", err)

		return l
	}

	return logging.NewLogger(level, file)
}

func registerFrameworkMetrics(m metrics.Manager) {
	m.NewCounter("app_grpc_requests_total", "Number of gRPC requests handled, by method and status code.")
	m.NewHistogram("app_grpc_response", "Response time of gRPC requests in seconds.",
		.001, .003, .005, .01, .02, .03, .05, .1, .2, .3, .5, .75, 1, 2, 3, 5, 10, 30)
	m.NewGauge("app_grpc_server_status", "gRPC server status (1=running, 0=stopped).")
	m.NewGauge("app_sql_up", "Result of the last database health probe (1=up, 0=down).")
}

func (c *Container) GetAppName() string { return c.appName }

func (c *Container) GetAppVersion() string { return c.appVersion }

func (c *Container) Metrics() metrics.Manager { return c.metricsManager }

// MetricsGatherer exposes the registry scraped by the metrics server.
func (c *Container) MetricsGatherer() prometheus.Gatherer { return c.registry }

// Health reports the state of every datasource held by the container.
func (c *Container) Health(ctx context.Context) map[string]*datasource.Health {
	health := make(map[string]*datasource.Health)

	if c.SQL != nil {
		health["sql"] = c.SQL.HealthCheck(ctx)
	}

	return health
}

// Close releases the pool and flushes the meter provider.
func (c *Container) Close(ctx context.Context) error {
	var err error

	if c.SQL != nil {
		err = errors.Join(err, c.SQL.Close())
	}

	for _, closeFn := range c.closers {
		err = errors.Join(err, closeFn(ctx))
	}

	return err
}
