package logging

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/trace"
)

type loggerWithSkip interface {
	logfWithSkip(skip int, level Level, format string, args ...any)
}

// ContextLogger decorates a Logger with the trace id of the span carried by a request context.
type ContextLogger struct {
	base    Logger
	traceID string
}

// NewContextLogger wraps base. When ctx carries no valid span the output is identical to base.
func NewContextLogger(ctx context.Context, base Logger) *ContextLogger {
	var traceID string

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	return &ContextLogger{base: base, traceID: traceID}
}

// TraceID returns the trace id attached to every entry, empty if none.
func (l *ContextLogger) TraceID() string { return l.traceID }

func (l *ContextLogger) withTraceInfo(args []any) []any {
	if l.traceID == "" {
		return args
	}

	return append(args, map[string]any{traceIDKey: l.traceID})
}

func (l *ContextLogger) logWithSkip(level Level, format string, args ...any) {
	args = l.withTraceInfo(args)

	if ls, ok := l.base.(loggerWithSkip); ok {
		// runtime.Caller(0) -> logfWithSkip(1) -> logWithSkip(2) -> Debug/Info(3) -> user code
		ls.logfWithSkip(3, level, format, args...)

		if level == FATAL {
			os.Exit(1)
		}

		return
	}

	plain, formatted := l.methodsFor(level)
	if format == "" {
		plain(args...)
		return
	}

	formatted(format, args...)
}

func (l *ContextLogger) methodsFor(level Level) (plain func(...any), formatted func(string, ...any)) {
	switch level {
	case DEBUG:
		return l.base.Debug, l.base.Debugf
	case NOTICE:
		return l.base.Notice, l.base.Noticef
	case WARN:
		return l.base.Warn, l.base.Warnf
	case ERROR:
		return l.base.Error, l.base.Errorf
	case FATAL:
		return l.base.Fatal, l.base.Fatalf
	default:
		return l.base.Info, l.base.Infof
	}
}

func (l *ContextLogger) Debug(args ...any)            { l.logWithSkip(DEBUG, "", args...) }
func (l *ContextLogger) Debugf(f string, args ...any) { l.logWithSkip(DEBUG, f, args...) }
func (l *ContextLogger) Log(args ...any)              { l.logWithSkip(INFO, "", args...) }
func (l *ContextLogger) Logf(f string, args ...any)   { l.logWithSkip(INFO, f, args...) }
func (l *ContextLogger) Info(args ...any)             { l.logWithSkip(INFO, "", args...) }
func (l *ContextLogger) Infof(f string, args ...any)  { l.logWithSkip(INFO, f, args...) }
func (l *ContextLogger) Notice(args ...any)           { l.logWithSkip(NOTICE, "", args...) }
func (l *ContextLogger) Noticef(f string, args ...any) {
	l.logWithSkip(NOTICE, f, args...)
}
func (l *ContextLogger) Warn(args ...any)             { l.logWithSkip(WARN, "", args...) }
func (l *ContextLogger) Warnf(f string, args ...any)  { l.logWithSkip(WARN, f, args...) }
func (l *ContextLogger) Error(args ...any)            { l.logWithSkip(ERROR, "", args...) }
func (l *ContextLogger) Errorf(f string, args ...any) { l.logWithSkip(ERROR, f, args...) }
func (l *ContextLogger) Fatal(args ...any)            { l.logWithSkip(FATAL, "", args...) }
func (l *ContextLogger) Fatalf(f string, args ...any) { l.logWithSkip(FATAL, f, args...) }
func (l *ContextLogger) ChangeLevel(level Level)      { l.base.ChangeLevel(level) }
