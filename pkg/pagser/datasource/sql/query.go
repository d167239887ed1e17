package sql

import (
	"fmt"
	"slices"

	"github.com/sllt/pagser/pkg/pagser/datasource/sql/qb"
)

// Query is an immutable SQL template with its bound arguments. Templates use `?` placeholders,
// which are rewritten for the connected dialect at execution time. Arguments are always sent
// separately from the text.
type Query struct {
	text string
	args []any
}

// NewQuery fails with ErrPlaceholderMismatch unless the template has exactly len(args) placeholders.
func NewQuery(text string, args ...any) (Query, error) {
	if n := qb.CountPlaceholders(text); n != len(args) {
		return Query{}, fmt.Errorf("%w: %d placeholders, %d arguments", ErrPlaceholderMismatch, n, len(args))
	}

	return Query{text: text, args: slices.Clone(args)}, nil
}

func (q Query) SQL() string { return q.text }

func (q Query) Args() []any { return slices.Clone(q.args) }
