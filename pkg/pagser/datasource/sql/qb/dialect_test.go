package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDialectDB struct {
	d string
}

func (s stubDialectDB) Dialect() string {
	return s.d
}

func TestNewBuilder_DialectAliases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Dialect
	}{
		{name: "mysql", input: "mysql", expected: DialectMySQL},
		{name: "mariadb alias", input: "mariadb", expected: DialectMySQL},
		{name: "postgres", input: "postgres", expected: DialectPostgres},
		{name: "pgx driver", input: "pgx", expected: DialectPostgres},
		{name: "cockroach alias", input: "cockroachdb", expected: DialectPostgres},
		{name: "sqlite", input: "sqlite", expected: DialectSQLite},
		{name: "sqlite3 alias", input: " SQLite3 ", expected: DialectSQLite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := New(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, b.Dialect())
		})
	}
}

func TestNewBuilder_Unsupported(t *testing.T) {
	_, err := New("oracle")
	require.ErrorIs(t, err, errUnsupportedDialect)

	_, err = New("")
	require.ErrorIs(t, err, errUnsupportedDialect)
}

func TestFromDB(t *testing.T) {
	b, err := FromDB(stubDialectDB{d: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, b.Dialect())

	_, err = FromDB(nil)
	require.ErrorIs(t, err, errNilDialectProvider)
}

func TestBuilder_Rebind(t *testing.T) {
	const query = "SELECT first_name FROM customer c INNER JOIN address a ON c.address_id = a.address_id " +
		"WHERE c.customer_id = ? AND c.email <> '?' AND c.store_id = ?"

	tests := []struct {
		dialect  string
		expected string
	}{
		{"postgres", "SELECT first_name FROM customer c INNER JOIN address a ON c.address_id = a.address_id " +
			"WHERE c.customer_id = $1 AND c.email <> '?' AND c.store_id = $2"},
		{"pgx", "SELECT first_name FROM customer c INNER JOIN address a ON c.address_id = a.address_id " +
			"WHERE c.customer_id = $1 AND c.email <> '?' AND c.store_id = $2"},
		{"mysql", query},
		{"sqlite", query},
	}

	for i, tc := range tests {
		b, err := New(tc.dialect)
		require.NoError(t, err)

		assert.Equal(t, tc.expected, b.Rebind(query), "TEST[%d], Failed.\n", i)
	}
}

func TestBuilder_Rebind_BlockComment(t *testing.T) {
	b, err := FromDB(stubDialectDB{d: "postgres"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT /* customer? */ first_name FROM customer WHERE customer_id = $1",
		b.Rebind("SELECT /* customer? */ first_name FROM customer WHERE customer_id = ?"))
}

func TestCountPlaceholders(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"SELECT 1", 0},
		{"SELECT * FROM customer WHERE customer_id = ?", 1},
		{"SELECT * FROM customer WHERE first_name = ? AND last_name = ?", 2},
		{"SELECT '?', \"a?b\", `c?` FROM t WHERE x = ?", 1},
		{"SELECT x FROM t -- where y = ?\nWHERE z = ?", 1},
		{"SELECT /* by id? */ x FROM t WHERE z = ?", 1},
		{"SELECT x FROM t WHERE z = ? /* unterminated ?", 1},
		{"SELECT x / ? FROM t", 1},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.want, CountPlaceholders(tc.query), "TEST[%d], Failed.\n", i)
	}
}
