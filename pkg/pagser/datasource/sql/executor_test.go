package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sllt/pagser/pkg/pagser/datasource"
	"github.com/sllt/pagser/pkg/pagser/logging"
	"github.com/sllt/pagser/pkg/pagser/metrics"
)

type summary struct {
	Name      string
	LastName  string
	CreatedOn string
	Address2  *string
}

//nolint:gochecknoglobals // shared test shape
var summaryShape = NewShape(
	String("first_name", func(s *summary) *string { return &s.Name }),
	String("last_name", func(s *summary) *string { return &s.LastName }),
	Date("create_date", func(s *summary) *string { return &s.CreatedOn }),
	OptionalString("address2", func(s *summary) **string { return &s.Address2 }),
)

func newMockDB(t *testing.T, dialect string) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockMetrics := metrics.NewMockManager(ctrl)

	mockMetrics.EXPECT().NewHistogram("app_sql_stats", gomock.Any(), gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().RecordHistogram(gomock.Any(), "app_sql_stats", gomock.Any(),
		"hostname", "localhost:5432", "database", "sakila", "type", gomock.Any()).AnyTimes()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	db, err := New(sqlDB, &DBConfig{Dialect: dialect, HostName: "localhost:5432", Database: "sakila"},
		logging.NewMockLogger(logging.ERROR), mockMetrics)
	require.NoError(t, err)

	return db, mock
}

func mustQuery(t *testing.T, text string, args ...any) Query {
	t.Helper()

	q, err := NewQuery(text, args...)
	require.NoError(t, err)

	return q
}

func TestFetchOne_FirstRowWins(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT first_name, last_name, create_date FROM customer WHERE customer_id = $1").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).
			AddRow("MARY", "SMITH", time.Date(2006, 2, 14, 22, 4, 36, 0, time.UTC)).
			AddRow("PATRICIA", "JOHNSON", time.Date(2006, 2, 14, 22, 4, 36, 0, time.UTC)))

	got, found, err := FetchOne(t.Context(), db,
		mustQuery(t, "SELECT first_name, last_name, create_date FROM customer WHERE customer_id = ?", int32(1)), summaryShape)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, summary{Name: "MARY", LastName: "SMITH", CreatedOn: "2006-02-14"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOne_NoRows(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT first_name, last_name, create_date FROM customer WHERE customer_id = $1").
		WithArgs(int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}))

	got, found, err := FetchOne(t.Context(), db,
		mustQuery(t, "SELECT first_name, last_name, create_date FROM customer WHERE customer_id = ?", int32(0)), summaryShape)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, summary{}, got)
}

func TestFetchOne_OptionalColumn(t *testing.T) {
	db, mock := newMockDB(t, "mysql")

	mock.ExpectQuery("SELECT * FROM v WHERE id = ?").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date", "address2"}).
			AddRow("MARY", "SMITH", []byte("2006-02-14 22:04:36"), nil))

	got, found, err := FetchOne(t.Context(), db, mustQuery(t, "SELECT * FROM v WHERE id = ?", 5), summaryShape)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, got.Address2)
	assert.Equal(t, "2006-02-14", got.CreatedOn)

	mock.ExpectQuery("SELECT * FROM v WHERE id = ?").
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date", "address2"}).
			AddRow("MARY", "SMITH", "2006-02-14", ""))

	got, _, err = FetchOne(t.Context(), db, mustQuery(t, "SELECT * FROM v WHERE id = ?", 6), summaryShape)

	require.NoError(t, err)
	require.NotNil(t, got.Address2)
	assert.Empty(t, *got.Address2)
}

func TestFetchOne_MappingErrors(t *testing.T) {
	tests := []struct {
		desc   string
		rows   *sqlmock.Rows
		column string
		cause  error
	}{
		{"missing required column", sqlmock.NewRows([]string{"first_name", "create_date"}).
			AddRow("MARY", "2006-02-14"), "last_name", errColumnMissing},
		{"null required column", sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).
			AddRow("MARY", nil, "2006-02-14"), "last_name", errColumnNull},
		{"unparsable date", sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).
			AddRow("MARY", "SMITH", "yesterday"), "create_date", errIncompatibleType},
		{"numeric name", sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).
			AddRow(int64(1), "SMITH", "2006-02-14"), "first_name", errIncompatibleType},
		{"repeated bound column", sqlmock.NewRows([]string{"first_name", "last_name", "create_date", "LAST_NAME"}).
			AddRow("MARY", "SMITH", "2006-02-14", "JONES"), "last_name", errColumnAmbiguous},
	}

	for i, tc := range tests {
		db, mock := newMockDB(t, "sqlite")

		mock.ExpectQuery("SELECT * FROM customer").WillReturnRows(tc.rows)

		_, found, err := FetchOne(t.Context(), db, mustQuery(t, "SELECT * FROM customer"), summaryShape)

		var mappingErr *MappingError

		require.ErrorAs(t, err, &mappingErr, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.column, mappingErr.Column, "TEST[%d], Failed.\n%s", i, tc.desc)
		require.ErrorIs(t, err, tc.cause, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.False(t, found, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestFetchOne_RepeatedUnboundColumns(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT * FROM customer c INNER JOIN address a ON c.address_id = a.address_id WHERE c.customer_id = $1").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date", "address_id", "address_id"}).
			AddRow("MARY", "SMITH", "2006-02-14", int64(5), int64(5)))

	got, found, err := FetchOne(t.Context(), db, mustQuery(t,
		"SELECT * FROM customer c INNER JOIN address a ON c.address_id = a.address_id WHERE c.customer_id = ?", int32(1)),
		summaryShape)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, summary{Name: "MARY", LastName: "SMITH", CreatedOn: "2006-02-14"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchMany_PreservesOrder(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT first_name, last_name, create_date FROM customer ORDER BY create_date DESC LIMIT 10").
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).
			AddRow("C", "C", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)).
			AddRow("A", "A", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
			AddRow("B", "B", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))

	got, err := FetchMany(t.Context(), db,
		mustQuery(t, "SELECT first_name, last_name, create_date FROM customer ORDER BY create_date DESC LIMIT 10"), summaryShape)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, "2024-03-03", got[0].CreatedOn)
}

func TestFetchMany_Empty(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT first_name, last_name, create_date FROM customer").
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}))

	got, err := FetchMany(t.Context(), db, mustQuery(t, "SELECT first_name, last_name, create_date FROM customer"), summaryShape)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchMany_BackendErrors(t *testing.T) {
	errConn := errors.New("connection refused")

	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT first_name FROM customer").WillReturnError(errConn)

	got, err := FetchMany(t.Context(), db, mustQuery(t, "SELECT first_name FROM customer"), summaryShape)

	var backendErr *BackendError

	require.ErrorAs(t, err, &backendErr)
	require.ErrorIs(t, err, errConn)
	assert.Equal(t, "query", backendErr.Op)
	assert.Nil(t, got)

	mock.ExpectQuery("SELECT first_name, last_name, create_date FROM customer").
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).
			AddRow("A", "A", "2024-03-01").
			AddRow("B", "B", "2024-03-02").
			RowError(1, errConn))

	got, err = FetchMany(t.Context(), db, mustQuery(t, "SELECT first_name, last_name, create_date FROM customer"), summaryShape)

	require.ErrorIs(t, err, errConn)
	assert.Nil(t, got)
}

func TestFetchScalar(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT customer_id FROM customer WHERE store_id = $1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}).AddRow(int64(3)).AddRow(int64(1)))

	ids, err := FetchScalar[int64](t.Context(), db, mustQuery(t, "SELECT customer_id FROM customer WHERE store_id = ?", 1))

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)

	mock.ExpectQuery("SELECT first_name, last_name FROM customer").
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name"}).AddRow("A", "B"))

	_, err = FetchScalar[string](t.Context(), db, mustQuery(t, "SELECT first_name, last_name FROM customer"))
	require.ErrorIs(t, err, errScalarColumns)
}

func TestRun_CancelDiscardsConnection(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT first_name, last_name, create_date FROM customer").
		WillDelayFor(time.Second).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "create_date"}).AddRow("A", "A", "2024-03-01"))

	ctx, cancel := context.WithCancel(t.Context())

	time.AfterFunc(50*time.Millisecond, cancel)

	got, err := FetchMany(ctx, db, mustQuery(t, "SELECT first_name, last_name, create_date FROM customer"), summaryShape)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)

	var backendErr *BackendError

	assert.NotErrorAs(t, err, &backendErr)
	assert.Zero(t, db.Stats().OpenConnections, "connection should not go back to the pool")
}

func TestRun_CancelWithoutLogger(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	db, err := New(sqlDB, &DBConfig{Dialect: "postgres"}, nil, nil)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT 1").WillDelayFor(time.Second).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(int64(1)))

	ctx, cancel := context.WithCancel(t.Context())

	time.AfterFunc(20*time.Millisecond, cancel)

	_, err = FetchScalar[int64](ctx, db, mustQuery(t, "SELECT 1"))

	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_DialectFromConfig(t *testing.T) {
	db, mock := newMockDB(t, "pgx")

	assert.Equal(t, "pgx", db.Dialect())

	mock.ExpectQuery("SELECT first_name FROM customer WHERE customer_id = $1 AND store_id = $2").
		WithArgs(int32(1), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name"}).AddRow("MARY"))

	names, err := FetchScalar[string](t.Context(), db,
		mustQuery(t, "SELECT first_name FROM customer WHERE customer_id = ? AND store_id = ?", int32(1), int32(2)))

	require.NoError(t, err)
	assert.Equal(t, []string{"MARY"}, names)

	_, err = New(nil, &DBConfig{Dialect: "oracle"}, nil, nil)

	var cfgErr *ConfigError

	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "DB_DIALECT", cfgErr.Field)
}

func TestRun_DeadlineBeforeAcquire(t *testing.T) {
	db, _ := newMockDB(t, "postgres")

	ctx, cancel := context.WithTimeout(t.Context(), time.Nanosecond)
	defer cancel()

	<-ctx.Done()

	_, _, err := FetchOne(ctx, db, mustQuery(t, "SELECT first_name FROM customer"), summaryShape)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewQuery_PlaceholderMismatch(t *testing.T) {
	_, err := NewQuery("SELECT * FROM customer WHERE customer_id = ?")
	require.ErrorIs(t, err, ErrPlaceholderMismatch)

	_, err = NewQuery("SELECT * FROM customer", 1)
	require.ErrorIs(t, err, ErrPlaceholderMismatch)

	q, err := NewQuery("SELECT * FROM customer WHERE customer_id = ?", 7)
	require.NoError(t, err)

	args := q.Args()
	args[0] = 8

	assert.Equal(t, []any{7}, q.Args())
	assert.Equal(t, "SELECT * FROM customer WHERE customer_id = ?", q.SQL())
}

func TestHealthCheck(t *testing.T) {
	db, mock := newMockDB(t, "postgres")

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(int64(1)))

	h := db.HealthCheck(t.Context())

	assert.Equal(t, datasource.StatusUp, h.Status)
	assert.Equal(t, "sakila", h.Details["database"])
	assert.Contains(t, h.Details, "stats")

	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("server closed the connection unexpectedly"))

	h = db.HealthCheck(t.Context())

	assert.Equal(t, datasource.StatusDown, h.Status)
	assert.Contains(t, h.Details["error"], "server closed the connection unexpectedly")
}
