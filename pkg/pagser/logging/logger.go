// Package logging provides the leveled logger used across pagser. Entries are written as JSON lines,
// or as colored single lines when the output is a terminal.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

const traceIDKey = "__trace_id__"

// PrettyPrint is implemented by log payloads that know how to render themselves in a terminal.
type PrettyPrint interface {
	PrettyPrint(writer io.Writer)
}

// Logger is the logging contract shared by every pagser component.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Log(args ...any)
	Logf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	ChangeLevel(level Level)
}

type logEntry struct {
	Level   Level     `json:"level"`
	Time    time.Time `json:"time"`
	Message any       `json:"message"`
	TraceID string    `json:"trace_id,omitempty"`
	Caller  string    `json:"caller,omitempty"`
}

type logger struct {
	level      atomic.Int32
	normalOut  io.Writer
	errorOut   io.Writer
	sinks      []io.Writer
	isTerminal bool

	// serializes writes to the shared outputs
	mu sync.Mutex
}

// NewLogger creates a logger writing to stdout and stderr. Every sink additionally receives
// each entry as a JSON line regardless of the terminal mode.
func NewLogger(level Level, sinks ...io.Writer) Logger {
	l := &logger{
		normalOut: os.Stdout,
		errorOut:  os.Stderr,
		sinks:     sinks,
	}

	l.level.Store(int32(level))
	l.isTerminal = checkIfTerminal(l.normalOut)

	return l
}

func checkIfTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func (l *logger) logf(level Level, format string, args ...any) {
	// runtime.Caller(0) -> logfWithSkip(1) -> logf(2) -> Debug/Info(3) -> user code
	l.logfWithSkip(3, level, format, args...)
}

func (l *logger) logfWithSkip(skip int, level Level, format string, args ...any) {
	if level < Level(l.level.Load()) {
		return
	}

	out := l.output(level)

	entry := logEntry{
		Level: level,
		Time:  time.Now(),
	}

	args, entry.TraceID = extractTraceID(args)

	switch {
	case format != "":
		entry.Message = fmt.Sprintf(format, args...)
	case len(args) == 1:
		entry.Message = args[0]
	default:
		entry.Message = fmt.Sprint(args...)
	}

	if _, file, line, ok := runtime.Caller(skip); ok {
		entry.Caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isTerminal {
		l.prettyPrint(&entry, out)
	} else {
		_ = json.NewEncoder(out).Encode(entry)
	}

	for _, sink := range l.sinks {
		_ = json.NewEncoder(sink).Encode(entry)
	}
}

// output resolves the writer for level. Nil writers fall back to the current os.Stdout and os.Stderr.
func (l *logger) output(level Level) io.Writer {
	if level >= ERROR {
		if l.errorOut == nil {
			return os.Stderr
		}

		return l.errorOut
	}

	if l.normalOut == nil {
		return os.Stdout
	}

	return l.normalOut
}

func extractTraceID(args []any) (rest []any, traceID string) {
	rest = args[:0:0]

	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if id, ok := m[traceIDKey].(string); ok {
				traceID = id
				continue
			}
		}

		rest = append(rest, arg)
	}

	return rest, traceID
}

func (*logger) prettyPrint(e *logEntry, out io.Writer) {
	fmt.Fprintf(out, "\u001B[38;5;%dm%s\u001B[0m [%s]", e.Level.color(), e.Level.String()[0:4], e.Time.Format(time.TimeOnly))

	if e.TraceID != "" {
		fmt.Fprintf(out, " \u001B[38;5;8m%s\u001B[0m", e.TraceID)
	}

	fmt.Fprint(out, " ")

	if fn, ok := e.Message.(PrettyPrint); ok {
		fn.PrettyPrint(out)
		return
	}

	fmt.Fprintf(out, "%v\n", e.Message)
}

func (l *logger) Debug(args ...any)                 { l.logf(DEBUG, "", args...) }
func (l *logger) Debugf(format string, args ...any) { l.logf(DEBUG, format, args...) }
func (l *logger) Log(args ...any)                   { l.logf(INFO, "", args...) }
func (l *logger) Logf(format string, args ...any)   { l.logf(INFO, format, args...) }
func (l *logger) Info(args ...any)                  { l.logf(INFO, "", args...) }
func (l *logger) Infof(format string, args ...any)  { l.logf(INFO, format, args...) }
func (l *logger) Notice(args ...any)                { l.logf(NOTICE, "", args...) }
func (l *logger) Noticef(format string, args ...any) {
	l.logf(NOTICE, format, args...)
}
func (l *logger) Warn(args ...any)                  { l.logf(WARN, "", args...) }
func (l *logger) Warnf(format string, args ...any)  { l.logf(WARN, format, args...) }
func (l *logger) Error(args ...any)                 { l.logf(ERROR, "", args...) }
func (l *logger) Errorf(format string, args ...any) { l.logf(ERROR, format, args...) }

func (l *logger) Fatal(args ...any) {
	l.logf(FATAL, "", args...)

	//nolint:revive // fatal must terminate the process
	os.Exit(1)
}

func (l *logger) Fatalf(format string, args ...any) {
	l.logf(FATAL, format, args...)

	//nolint:revive // fatal must terminate the process
	os.Exit(1)
}

// ChangeLevel is safe to call while other goroutines are logging.
func (l *logger) ChangeLevel(level Level) {
	l.level.Store(int32(level))
}
