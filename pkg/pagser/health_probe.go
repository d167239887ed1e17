package pagser

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sllt/pagser/pkg/pagser/datasource"
	"github.com/sllt/pagser/pkg/pagser/logging"
	"github.com/sllt/pagser/pkg/pagser/metrics"
)

type healthChecker interface {
	HealthCheck(ctx context.Context) *datasource.Health
}

// healthProbe periodically checks the database and mirrors the result into the gRPC health
// service and the app_sql_up gauge.
type healthProbe struct {
	interval time.Duration
	db       healthChecker
	health   *health.Server
	metrics  metrics.Manager
	logger   logging.Logger
}

func (p *healthProbe) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.probe(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *healthProbe) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, min(p.interval, healthProbeTimeout))
	defer cancel()

	h := p.db.HealthCheck(ctx)

	if h.Status == datasource.StatusUp {
		p.health.SetServingStatus(customerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		p.metrics.SetGauge("app_sql_up", 1)

		return
	}

	// shutting down
	if errors.Is(ctx.Err(), context.Canceled) {
		return
	}

	p.logger.Warnf("database health probe failed: %v", h.Details["error"])
	p.health.SetServingStatus(customerServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	p.metrics.SetGauge("app_sql_up", 0)
}
