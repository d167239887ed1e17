package pagser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	middleware "github.com/grpc-ecosystem/go-grpc-middleware/v2"
	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/ratelimit"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/infra"
	"github.com/sllt/pagser/pkg/pagser/logging"
	"github.com/sllt/pagser/pkg/pagser/metrics"
)

var errRateLimited = errors.New("request rate limit exceeded")

// RPCLog is the entry written once per finished call.
type RPCLog struct {
	ID       string `json:"id,omitempty"`
	Method   string `json:"method"`
	Code     string `json:"code"`
	Duration int64  `json:"duration"`
	Error    string `json:"error,omitempty"`
}

func (l *RPCLog) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;%dm%-16s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s",
		l.ID, codeColor(l.Code), l.Code, l.Duration, l.Method)

	if l.Error != "" {
		fmt.Fprintf(writer, " \u001B[38;5;8m%s\u001B[0m", l.Error)
	}

	fmt.Fprintln(writer)
}

func codeColor(code string) int {
	switch code {
	case codes.OK.String():
		return 34
	case codes.Internal.String(), codes.Unknown.String(), codes.DataLoss.String(), codes.Unavailable.String():
		return 202
	default:
		return 220
	}
}

// defaultInterceptors builds the chain every pagser server starts with. The first interceptor is
// the outermost one.
func defaultInterceptors(c *infra.Container, cfg config.Config) ([]grpc.UnaryServerInterceptor, []grpc.StreamServerInterceptor) {
	logOpts := []grpclog.Option{
		grpclog.WithLogOnEvents(grpclog.FinishCall),
		grpclog.WithLevels(codeToLevel),
		grpclog.WithDurationField(func(d time.Duration) grpclog.Fields {
			return grpclog.Fields{"grpc.time_us", d.Microseconds()}
		}),
	}
	recoveryOpt := recovery.WithRecoveryHandlerContext(panicHandler(c.Logger))

	unary := []grpc.UnaryServerInterceptor{
		requestIDUnaryInterceptor,
		grpclog.UnaryServerInterceptor(rpcLogger(c.Logger), logOpts...),
		metricsUnaryInterceptor(c.Metrics()),
	}
	stream := []grpc.StreamServerInterceptor{
		requestIDStreamInterceptor,
		grpclog.StreamServerInterceptor(rpcLogger(c.Logger), logOpts...),
		metricsStreamInterceptor(c.Metrics()),
	}

	if limiter := newRateLimiter(c, cfg); limiter != nil {
		unary = append(unary, ratelimit.UnaryServerInterceptor(limiter))
		stream = append(stream, ratelimit.StreamServerInterceptor(limiter))
	}

	unary = append(unary, recovery.UnaryServerInterceptor(recoveryOpt))
	stream = append(stream, recovery.StreamServerInterceptor(recoveryOpt))

	return unary, stream
}

func codeToLevel(code codes.Code) grpclog.Level {
	switch code {
	case codes.OK, codes.InvalidArgument, codes.NotFound, codes.AlreadyExists:
		return grpclog.LevelInfo
	case codes.Canceled, codes.DeadlineExceeded, codes.Unimplemented, codes.ResourceExhausted,
		codes.FailedPrecondition, codes.Aborted, codes.OutOfRange, codes.PermissionDenied, codes.Unauthenticated:
		return grpclog.LevelWarn
	default:
		return grpclog.LevelError
	}
}

// rpcLogger adapts the pagser logger to the middleware logging contract.
func rpcLogger(base logging.Logger) grpclog.Logger {
	return grpclog.LoggerFunc(func(ctx context.Context, level grpclog.Level, _ string, fields ...any) {
		entry := &RPCLog{}

		for i := 0; i+1 < len(fields); i += 2 {
			key, _ := fields[i].(string)
			val := fields[i+1]

			switch key {
			case "request_id":
				entry.ID = fmt.Sprint(val)
			case "grpc.service":
				entry.Method = "/" + fmt.Sprint(val) + entry.Method
			case "grpc.method":
				entry.Method += "/" + fmt.Sprint(val)
			case "grpc.code":
				entry.Code = fmt.Sprint(val)
			case "grpc.time_us":
				entry.Duration, _ = val.(int64)
			case "grpc.error":
				entry.Error = fmt.Sprint(val)
			}
		}

		l := logging.NewContextLogger(ctx, base)

		switch {
		case level >= grpclog.LevelError:
			l.Error(entry)
		case level >= grpclog.LevelWarn:
			l.Warn(entry)
		case level >= grpclog.LevelInfo:
			l.Info(entry)
		default:
			l.Debug(entry)
		}
	})
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDHeader); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}

	return uuid.NewString()
}

func withRequestID(ctx context.Context) context.Context {
	id := requestID(ctx)

	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

	return grpclog.InjectLogField(ctx, "request_id", id)
}

func requestIDUnaryInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	return handler(withRequestID(ctx), req)
}

func requestIDStreamInterceptor(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	wrapped := middleware.WrapServerStream(ss)
	wrapped.WrappedContext = withRequestID(ss.Context())

	return handler(srv, wrapped)
}

func metricsUnaryInterceptor(m metrics.Manager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		recordRPC(ctx, m, info.FullMethod, start, err)

		return resp, err
	}
}

func metricsStreamInterceptor(m metrics.Manager) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		err := handler(srv, ss)

		recordRPC(ss.Context(), m, info.FullMethod, start, err)

		return err
	}
}

func recordRPC(ctx context.Context, m metrics.Manager, method string, start time.Time, err error) {
	code := status.Code(err).String()

	m.IncrementCounter(ctx, "app_grpc_requests_total", "method", method, "code", code)
	m.RecordHistogram(ctx, "app_grpc_response", time.Since(start).Seconds(), "method", method, "code", code)
}

func panicHandler(logger logging.Logger) recovery.RecoveryHandlerFuncContext {
	return func(ctx context.Context, p any) error {
		logging.NewContextLogger(ctx, logger).Errorf("panic recovered: %v\n%s", p, debug.Stack())

		return status.Error(codes.Internal, "internal server error")
	}
}

type rateLimiter struct {
	limiter *rate.Limiter
}

// newRateLimiter reads GRPC_RATE_LIMIT in requests per second. Zero or an invalid value disables it.
func newRateLimiter(c *infra.Container, cfg config.Config) *rateLimiter {
	raw := cfg.Get("GRPC_RATE_LIMIT")
	if raw == "" {
		return nil
	}

	rps, err := strconv.ParseFloat(raw, 64)
	if err != nil || rps < 0 {
		c.Warnf("ignoring invalid GRPC_RATE_LIMIT %q", raw)
		return nil
	}

	if rps == 0 {
		return nil
	}

	burst := max(int(rps), 1)

	return &rateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (r *rateLimiter) Limit(context.Context) error {
	if !r.limiter.Allow() {
		return errRateLimited
	}

	return nil
}
