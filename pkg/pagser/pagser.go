/*
Package pagser wires the customer query service into a runnable process: the gRPC server with
its interceptor chain, the metrics and health HTTP server, the database health probe and the
tracer provider.
*/
package pagser

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/customer"
	"github.com/sllt/pagser/pkg/pagser/customerpb"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql"
	"github.com/sllt/pagser/pkg/pagser/infra"
	"github.com/sllt/pagser/pkg/pagser/version"
)

// App is a configured, not yet running, pagser process.
type App struct {
	Config config.Config

	container    *infra.Container
	grpcServer   *grpcServer
	metricServer *metricServer
	healthProbe  *healthProbe
	gracePeriod  time.Duration
}

// New builds the container from cfg and registers the customer service. No network
// connection is made.
func New(cfg config.Config) (*App, error) {
	c, err := infra.NewContainer(cfg, version.Version)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, c)
}

func newApp(cfg config.Config, c *infra.Container) (*App, error) {
	g, err := newGRPCServer(c, cfg.GetOrDefault("PAGSER_ADDR", defaultAddr), cfg)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, container: c, grpcServer: g}

	if a.gracePeriod, err = durationFromConfig(cfg, "SHUTDOWN_GRACE_PERIOD", shutDownTimeout); err != nil {
		return nil, err
	}

	port, err := strconv.Atoi(cfg.GetOrDefault("METRICS_PORT", defaultMetricsPort))
	if err != nil || port < 0 || port > 65535 {
		return nil, &sql.ConfigError{Field: "METRICS_PORT", Err: errInvalidPort}
	}

	if port > 0 {
		a.metricServer = newMetricServer(c, port)
	}

	interval, err := durationFromConfig(cfg, "HEALTH_CHECK_INTERVAL", defaultHealthInterval)
	if err != nil {
		return nil, err
	}

	if interval > 0 {
		a.healthProbe = &healthProbe{
			interval: interval,
			db:       c.SQL,
			health:   g.health,
			metrics:  c.Metrics(),
			logger:   c.Logger,
		}
	}

	if err := a.RegisterService(&customerpb.CustomerService_ServiceDesc, customer.NewService(c.SQL, c.Logger)); err != nil {
		return nil, err
	}

	return a, nil
}

func durationFromConfig(cfg config.Config, key string, def time.Duration) (time.Duration, error) {
	raw := cfg.Get(key)
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, &sql.ConfigError{Field: key, Err: errors.Join(errInvalidDuration, err)}
	}

	return d, nil
}

var errInvalidDuration = errors.New("expected a non-negative duration such as 30s")

// RegisterService adds a gRPC service. It must be called before Run.
func (a *App) RegisterService(desc *grpc.ServiceDesc, impl any) error {
	return a.grpcServer.registerService(desc, impl)
}

// AddGRPCServerOptions appends server options. It must be called before Run.
func (a *App) AddGRPCServerOptions(opts ...grpc.ServerOption) error {
	return a.grpcServer.addServerOptions(opts...)
}

// AddGRPCUnaryInterceptors appends interceptors after the default chain.
func (a *App) AddGRPCUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) error {
	return a.grpcServer.addUnaryInterceptors(interceptors...)
}

// AddGRPCServerStreamInterceptors appends stream interceptors after the default chain.
func (a *App) AddGRPCServerStreamInterceptors(interceptors ...grpc.StreamServerInterceptor) error {
	return a.grpcServer.addStreamInterceptors(interceptors...)
}

// Run serves until ctx is canceled, SIGINT or SIGTERM is received, or a server fails. Shutdown
// is bounded by SHUTDOWN_GRACE_PERIOD.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.container.Infof("pagser %s", version.String())

	stopTracing, err := initTracer(ctx, a.container, a.Config)
	if err != nil {
		return err
	}

	// created up front so that an early Shutdown always finds the server
	if err := a.grpcServer.createServer(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.grpcServer.Run(a.container) })

	if a.metricServer != nil {
		g.Go(func() error { return a.metricServer.Run(a.container) })
	}

	if a.healthProbe != nil {
		g.Go(func() error { return a.healthProbe.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.gracePeriod)
		defer cancel()

		return errors.Join(a.Shutdown(shutdownCtx), stopTracing(shutdownCtx))
	})

	return g.Wait()
}

// Shutdown stops the servers and releases the pool.
func (a *App) Shutdown(ctx context.Context) error {
	a.container.Info("Shutting down pagser")

	err := a.grpcServer.Shutdown(ctx)

	if a.metricServer != nil {
		err = errors.Join(err, a.metricServer.Shutdown(ctx))
	}

	err = errors.Join(err, a.container.Close(ctx))

	if err != nil {
		a.container.Errorf("error while shutting down: %v", err)
		return err
	}

	a.container.Info("pagser stopped")

	return nil
}
