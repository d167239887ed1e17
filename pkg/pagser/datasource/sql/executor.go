package sql

import (
	"context"
	"database/sql"
)

// Executor runs a query on a scoped connection. DB is the production implementation.
type Executor interface {
	Run(ctx context.Context, q Query, scan func(*sql.Rows) error) error
}

// FetchOne maps the first row of the result. found is false when no row matched, which is not
// an error. Rows after the first are ignored, so q must not match more than one row.
func FetchOne[T any](ctx context.Context, ex Executor, q Query, shape Shape[T]) (record T, found bool, err error) {
	err = ex.Run(ctx, q, func(rows *sql.Rows) error {
		r, err := newRowReader(rows)
		if err != nil {
			return err
		}

		if !rows.Next() {
			return nil
		}

		row, err := r.read()
		if err != nil {
			return err
		}

		record, err = shape.Map(row)
		if err != nil {
			return err
		}

		found = true

		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	return record, found, nil
}

// FetchMany maps every row in backend order. No match yields an empty, non-nil slice.
func FetchMany[T any](ctx context.Context, ex Executor, q Query, shape Shape[T]) ([]T, error) {
	records := make([]T, 0)

	err := ex.Run(ctx, q, func(rows *sql.Rows) error {
		r, err := newRowReader(rows)
		if err != nil {
			return err
		}

		for rows.Next() {
			row, err := r.read()
			if err != nil {
				return err
			}

			record, err := shape.Map(row)
			if err != nil {
				return err
			}

			records = append(records, record)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// FetchScalar collects the single column of every row.
func FetchScalar[T any](ctx context.Context, ex Executor, q Query) ([]T, error) {
	values := make([]T, 0)

	err := ex.Run(ctx, q, func(rows *sql.Rows) error {
		columns, err := rows.Columns()
		if err != nil {
			return &BackendError{Op: "read columns", Err: err}
		}

		if len(columns) != 1 {
			return &MappingError{Err: errScalarColumns}
		}

		for rows.Next() {
			var v T

			if err := rows.Scan(&v); err != nil {
				return &MappingError{Column: columns[0], Err: err}
			}

			values = append(values, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}
