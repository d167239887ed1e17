package pagser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql"
	"github.com/sllt/pagser/pkg/pagser/infra"
)

var (
	errInvalidPort   = errors.New("port must be between 0 and 65535")
	errServerCreated = errors.New("gRPC server already created")
)

type pendingService struct {
	desc *grpc.ServiceDesc
	impl any
}

type grpcServer struct {
	server *grpc.Server
	health *health.Server
	addr   string
	config config.Config

	interceptors       []grpc.UnaryServerInterceptor
	streamInterceptors []grpc.StreamServerInterceptor
	options            []grpc.ServerOption
	pendingServices    []pendingService

	serverCreated bool
	mu            sync.Mutex
}

func newGRPCServer(c *infra.Container, addr string, cfg config.Config) (*grpcServer, error) {
	if err := validateAddr(addr); err != nil {
		return nil, err
	}

	unary, stream := defaultInterceptors(c, cfg)

	return &grpcServer{
		health:             health.NewServer(),
		addr:               addr,
		config:             cfg,
		interceptors:       unary,
		streamInterceptors: stream,
	}, nil
}

func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return &sql.ConfigError{Field: "PAGSER_ADDR", Err: err}
	}

	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return &sql.ConfigError{Field: "PAGSER_ADDR", Err: fmt.Errorf("%w: %q", errInvalidPort, port)}
	}

	return nil
}

func (g *grpcServer) addServerOptions(opts ...grpc.ServerOption) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.serverCreated {
		return errServerCreated
	}

	g.options = append(g.options, opts...)

	return nil
}

func (g *grpcServer) addUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.serverCreated {
		return errServerCreated
	}

	g.interceptors = append(g.interceptors, interceptors...)

	return nil
}

func (g *grpcServer) addStreamInterceptors(interceptors ...grpc.StreamServerInterceptor) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.serverCreated {
		return errServerCreated
	}

	g.streamInterceptors = append(g.streamInterceptors, interceptors...)

	return nil
}

// registerService queues a service until the server is created so that interceptors added in
// between still apply.
func (g *grpcServer) registerService(desc *grpc.ServiceDesc, impl any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.serverCreated {
		return errServerCreated
	}

	g.pendingServices = append(g.pendingServices, pendingService{desc: desc, impl: impl})

	return nil
}

func (g *grpcServer) createServer() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.serverCreated {
		return nil
	}

	opts := make([]grpc.ServerOption, 0, len(g.options)+3)
	opts = append(opts, g.options...)
	opts = append(opts,
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(g.interceptors...),
		grpc.ChainStreamInterceptor(g.streamInterceptors...),
	)

	g.server = grpc.NewServer(opts...)

	grpc_health_v1.RegisterHealthServer(g.server, g.health)

	if enabled, _ := strconv.ParseBool(g.config.GetOrDefault("GRPC_ENABLE_REFLECTION", defaultReflection)); enabled {
		reflection.Register(g.server)
	}

	for _, s := range g.pendingServices {
		g.server.RegisterService(s.desc, s.impl)
		g.health.SetServingStatus(s.desc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	g.pendingServices = nil
	g.serverCreated = true

	return nil
}

// Run listens on the configured address and serves until Shutdown.
func (g *grpcServer) Run(c *infra.Container) error {
	if err := g.createServer(); err != nil {
		return err
	}

	lis, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", g.addr)
	if err != nil {
		c.Errorf("error in starting gRPC server at %s: %s", g.addr, err)
		return err
	}

	return g.serve(c, lis)
}

func (g *grpcServer) serve(c *infra.Container, lis net.Listener) error {
	c.Logf("Starting gRPC server at %s", lis.Addr())

	c.Metrics().SetGauge("app_grpc_server_status", 1)
	defer c.Metrics().SetGauge("app_grpc_server_status", 0)

	if err := g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		c.Errorf("error in gRPC server at %s: %s", lis.Addr(), err)
		return err
	}

	return nil
}

// Shutdown drains in-flight calls and falls back to a hard stop when ctx expires.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	srv := g.server
	g.mu.Unlock()

	if srv == nil {
		return nil
	}

	g.health.Shutdown()

	return ShutdownWithContext(ctx, func(context.Context) error {
		srv.GracefulStop()
		return nil
	}, func() error {
		srv.Stop()
		return nil
	})
}
