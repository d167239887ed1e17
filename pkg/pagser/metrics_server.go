package pagser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sllt/pagser/pkg/pagser/datasource"
	"github.com/sllt/pagser/pkg/pagser/infra"
	"github.com/sllt/pagser/pkg/pagser/metrics"
)

type metricServer struct {
	port int
	srv  *http.Server
}

func newMetricServer(c *infra.Container, port int) *metricServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.GetHandler(c.MetricsGatherer()))
	mux.HandleFunc("/.well-known/health", healthHandler(c))

	return &metricServer{
		port: port,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (m *metricServer) Run(c *infra.Container) error {
	c.Logf("Starting metrics server on port: %d", m.port)

	err := m.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to metrics server, err: %v", err)
		return err
	}

	return nil
}

func (m *metricServer) Shutdown(ctx context.Context) error {
	return ShutdownWithContext(ctx, func(ctx context.Context) error {
		return m.srv.Shutdown(ctx)
	}, m.srv.Close)
}

// healthHandler answers 200 when every datasource is up and 503 otherwise.
func healthHandler(c *infra.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		health := c.Health(ctx)

		code := http.StatusOK

		for _, h := range health {
			if h.Status != datasource.StatusUp {
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)

		if err := json.NewEncoder(w).Encode(map[string]any{"data": health}); err != nil {
			c.Errorf("writing health response: %v", err)
		}
	}
}
