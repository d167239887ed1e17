// Package sql is the read-only SQL datasource of pagser. It wraps a lazily connected sql.DB
// with query logging, latency metrics and scoped connection acquisition, and maps result rows
// onto typed records.
package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/sllt/pagser/pkg/pagser/datasource"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql/qb"
)

// DB is a wrapper around sql.DB which provides some more features.
type DB struct {
	// contains unexported or private fields
	*sql.DB
	logger  datasource.Logger
	config  *DBConfig
	metrics Metrics
	builder *qb.Builder

	statsRegistration metric.Registration
}

type Log struct {
	Type     string `json:"type"`
	Query    string `json:"query"`
	Duration int64  `json:"duration"`
	Args     []any  `json:"args,omitempty"`
}

//nolint:gochecknoglobals // compiled once
var whitespace = regexp.MustCompile(`\s+`)

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%-32s \u001B[38;5;24m%-6s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s\n",
		l.Type, "SQL", l.Duration, clean(l.Query))
}

func clean(query string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(query, " "))
}

// New wraps an already opened sql.DB. Connect is the usual entry point; New exists for callers
// that manage the sql.DB themselves. logger and metrics may be nil.
func New(db *sql.DB, cfg *DBConfig, logger datasource.Logger, metrics Metrics) (*DB, error) {
	d := &DB{DB: db, logger: logger, config: cfg, metrics: metrics}

	builder, err := dialectBuilder(d)
	if err != nil {
		return nil, err
	}

	d.builder = builder

	if metrics != nil {
		metrics.NewHistogram("app_sql_stats", "Response time of SQL queries in milliseconds.", histogramBuckets...)
	}

	return d, nil
}

// Dialect is the configured DB_DIALECT, which selects the placeholder style of every query.
func (d *DB) Dialect() string {
	return d.config.Dialect
}

func (d *DB) sendOperationStats(start time.Time, queryType, query string, args ...any) {
	elapsed := time.Since(start)

	if d.logger != nil {
		d.logger.Debug(&Log{
			Type:     queryType,
			Query:    query,
			Duration: elapsed.Microseconds(),
			Args:     args,
		})
	}

	if d.metrics != nil {
		d.metrics.RecordHistogram(context.Background(), "app_sql_stats", float64(elapsed.Milliseconds()),
			"hostname", d.config.HostName, "database", d.config.Database, "type", getOperationType(query))
	}
}

func getOperationType(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return ""
	}

	return strings.ToUpper(words[0])
}

// Run executes q on a connection borrowed for this call only and hands the result set to scan.
// Driver failures are reported as *BackendError. When ctx ends while the query is in flight,
// the borrowed connection is discarded instead of returned to the pool and ctx.Err() is returned.
func (d *DB) Run(ctx context.Context, q Query, scan func(*sql.Rows) error) error {
	query, args := d.builder.Rebind(q.SQL()), q.Args()

	defer d.sendOperationStats(time.Now(), "Query", query, args...)

	return d.withConn(ctx, func(conn *sql.Conn) (err error) {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return &BackendError{Op: "query", Err: err}
		}

		defer func() {
			if closeErr := rows.Close(); closeErr != nil && err == nil {
				err = &BackendError{Op: "close rows", Err: closeErr}
			}
		}()

		if err = scan(rows); err != nil {
			return err
		}

		if err = rows.Err(); err != nil {
			return &BackendError{Op: "read rows", Err: err}
		}

		return nil
	})
}

// withConn is the scoped acquisition: the connection is held exactly for the duration of fn
// and released on every exit path.
func (d *DB) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := d.DB.Conn(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return &BackendError{Op: "acquire connection", Err: err}
	}

	defer func() {
		if closeErr := conn.Close(); closeErr != nil && !errors.Is(closeErr, sql.ErrConnDone) && d.logger != nil {
			d.logger.Warnf("releasing connection: %v", closeErr)
		}
	}()

	err = fn(conn)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		discard(conn)

		if d.logger != nil {
			d.logger.Debugf("discarded connection after %v", ctxErr)
		}

		return ctxErr
	}

	return err
}

// discard drops the underlying driver connection. It may be mid-protocol after an abandoned query.
func discard(conn *sql.Conn) {
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
}

// HealthCheck round trips a trivial query and reports pool statistics.
func (d *DB) HealthCheck(ctx context.Context) *datasource.Health {
	h := &datasource.Health{
		Details: map[string]any{
			"host":    d.config.HostName,
			"dialect": d.config.Dialect,
		},
	}

	if d.config.Database != "" {
		h.Details["database"] = d.config.Database
	}

	q, _ := NewQuery("SELECT 1")

	if _, err := FetchScalar[int64](ctx, d, q); err != nil {
		h.Status = datasource.StatusDown
		h.Details["error"] = err.Error()

		return h
	}

	stats := d.DB.Stats()

	h.Status = datasource.StatusUp
	h.Details["stats"] = map[string]int{
		"maxOpenConnections": stats.MaxOpenConnections,
		"openConnections":    stats.OpenConnections,
		"inUse":              stats.InUse,
		"idle":               stats.Idle,
		"waitCount":          int(stats.WaitCount),
	}

	return h
}

func (d *DB) Close() error {
	if d.statsRegistration != nil {
		if err := d.statsRegistration.Unregister(); err != nil && d.logger != nil {
			d.logger.Warnf("unregistering pool metrics: %v", err)
		}
	}

	if d.DB != nil {
		return d.DB.Close()
	}

	return nil
}
