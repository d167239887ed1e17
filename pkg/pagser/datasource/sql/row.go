package sql

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar format every date column is normalized to.
const DateLayout = "2006-01-02"

//nolint:gochecknoglobals // accepted textual date encodings, most specific first
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	DateLayout,
}

// ambiguousColumn marks a name carried by more than one column of the result set.
const ambiguousColumn = -1

// Row is a read-only view of one result row addressed by column name. Names are matched
// case-insensitively.
type Row struct {
	index  map[string]int
	values []any
}

// Value returns the raw driver value of column. ok is false when the result set has no such
// column or more than one.
func (r Row) Value(column string) (v any, ok bool) {
	i, ok := r.index[strings.ToLower(column)]
	if !ok || i == ambiguousColumn {
		return nil, false
	}

	return r.values[i], true
}

func (r Row) ambiguous(column string) bool {
	i, ok := r.index[strings.ToLower(column)]

	return ok && i == ambiguousColumn
}

type rowReader struct {
	rows    *sql.Rows
	columns []string
	index   map[string]int
}

func newRowReader(rows *sql.Rows) (*rowReader, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, &BackendError{Op: "read columns", Err: err}
	}

	index := make(map[string]int, len(columns))

	for i, c := range columns {
		name := strings.ToLower(c)

		if _, seen := index[name]; seen {
			index[name] = ambiguousColumn
			continue
		}

		index[name] = i
	}

	return &rowReader{rows: rows, columns: columns, index: index}, nil
}

// read scans the current row into a fresh Row. Rows never share their value slices.
func (r *rowReader) read() (Row, error) {
	values := make([]any, len(r.columns))
	dest := make([]any, len(values))

	for i := range values {
		dest[i] = &values[i]
	}

	if err := r.rows.Scan(dest...); err != nil {
		return Row{}, &BackendError{Op: "scan row", Err: err}
	}

	return Row{index: r.index, values: values}, nil
}

// Column binds one result column to one field of T.
type Column[T any] struct {
	name     string
	optional bool
	assign   func(dst *T, v any) error
}

// String binds a required text column.
func String[T any](column string, field func(*T) *string) Column[T] {
	return Column[T]{name: column, assign: func(dst *T, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}

		*field(dst) = s

		return nil
	}}
}

// OptionalString binds a text column that may be NULL or missing. Absence leaves the field nil.
func OptionalString[T any](column string, field func(*T) **string) Column[T] {
	return Column[T]{name: column, optional: true, assign: func(dst *T, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}

		*field(dst) = &s

		return nil
	}}
}

// Date binds a required date or timestamp column, rendered as DateLayout.
func Date[T any](column string, field func(*T) *string) Column[T] {
	return Column[T]{name: column, assign: func(dst *T, v any) error {
		d, err := asDate(v)
		if err != nil {
			return err
		}

		*field(dst) = d

		return nil
	}}
}

// Int64 binds a required integer column.
func Int64[T any](column string, field func(*T) *int64) Column[T] {
	return Column[T]{name: column, assign: func(dst *T, v any) error {
		n, err := asInt64(v)
		if err != nil {
			return err
		}

		*field(dst) = n

		return nil
	}}
}

// Shape describes how a Row populates a T.
type Shape[T any] struct {
	columns []Column[T]
}

func NewShape[T any](columns ...Column[T]) Shape[T] {
	return Shape[T]{columns: columns}
}

// Map builds a T from row. A required column that is missing, NULL or of an unusable type
// yields a *MappingError, as does any bound column whose name the result set repeats.
func (s Shape[T]) Map(row Row) (T, error) {
	var record, zero T

	for _, c := range s.columns {
		if row.ambiguous(c.name) {
			return zero, &MappingError{Column: c.name, Err: errColumnAmbiguous}
		}

		v, ok := row.Value(c.name)

		switch {
		case c.optional && (!ok || v == nil):
			continue
		case !ok:
			return zero, &MappingError{Column: c.name, Err: errColumnMissing}
		case v == nil:
			return zero, &MappingError{Column: c.name, Err: errColumnNull}
		}

		if err := c.assign(&record, v); err != nil {
			return zero, &MappingError{Column: c.name, Err: err}
		}
	}

	return record, nil
}

func asString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", fmt.Errorf("%w: %T is not text", errIncompatibleType, v)
	}
}

func asDate(v any) (string, error) {
	switch t := v.(type) {
	case time.Time:
		return t.Format(DateLayout), nil
	case string, []byte:
		s, _ := asString(t)

		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format(DateLayout), nil
			}
		}

		return "", fmt.Errorf("%w: %q is not a date", errIncompatibleType, s)
	default:
		return "", fmt.Errorf("%w: %T is not a date", errIncompatibleType, v)
	}
}

func asInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int:
		return int64(t), nil
	case string, []byte:
		s, _ := asString(t)

		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", errIncompatibleType, s)
		}

		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", errIncompatibleType, v)
	}
}
