package qb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect represents a SQL dialect that qb can prepare queries for.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

var (
	errUnsupportedDialect = errors.New("[builder] unsupported dialect")
	errNilDialectProvider = errors.New("[builder] dialect provider is nil")
)

// Builder rewrites templates for a specific dialect.
type Builder struct {
	dialect Dialect
}

// DialectProvider describes a type that can expose SQL dialect.
type DialectProvider interface {
	Dialect() string
}

// New returns a Builder for the provided dialect.
//
// Supported values include:
//   - mysql, mariadb
//   - postgres, postgresql, pgx, cockroachdb
//   - sqlite, sqlite3
func New(dialect string) (*Builder, error) {
	d, err := Normalize(dialect)
	if err != nil {
		return nil, err
	}

	return &Builder{dialect: d}, nil
}

// FromDB creates a Builder from a provider that exposes Dialect().
func FromDB(db DialectProvider) (*Builder, error) {
	if db == nil {
		return nil, errNilDialectProvider
	}

	return New(db.Dialect())
}

// Normalize maps driver names and aliases onto a Dialect.
func Normalize(dialect string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case string(DialectMySQL), "mariadb":
		return DialectMySQL, nil
	case string(DialectPostgres), "postgresql", "pgx", "cockroachdb":
		return DialectPostgres, nil
	case string(DialectSQLite), "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, dialect)
	}
}

func (b Builder) Dialect() Dialect {
	return b.dialect
}

// Rebind rewrites `?` placeholders into the dialect's native form.
func (b Builder) Rebind(query string) string {
	if b.dialect != DialectPostgres {
		return query
	}

	var (
		counter = 1
		out     strings.Builder
		last    int
	)

	out.Grow(len(query) + 8)

	scanPlaceholders(query, func(pos int) {
		out.WriteString(query[last:pos])
		out.WriteByte('$')
		out.WriteString(strconv.Itoa(counter))

		counter++
		last = pos + 1
	})

	out.WriteString(query[last:])

	return out.String()
}

// CountPlaceholders returns the number of `?` placeholders in query.
func CountPlaceholders(query string) int {
	n := 0

	scanPlaceholders(query, func(int) { n++ })

	return n
}

// scanPlaceholders calls fn with the byte offset of every `?` outside quotes and comments.
func scanPlaceholders(query string, fn func(pos int)) {
	var quote byte

	for i := 0; i < len(query); i++ {
		c := query[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			for i < len(query) && query[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				return
			}

			i += end + 3
		case c == '?':
			fn(i)
		}
	}
}
