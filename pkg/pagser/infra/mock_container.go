package infra

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"github.com/sllt/pagser/pkg/pagser/datasource/sql"
	"github.com/sllt/pagser/pkg/pagser/logging"
	"github.com/sllt/pagser/pkg/pagser/metrics"
)

// Mocks exposes the expectations side of a mock container.
type Mocks struct {
	SQL     sqlmock.Sqlmock
	Metrics *metrics.MockManager
}

// NewMockContainer returns a container backed by sqlmock and a gomock metrics manager.
// SQL templates are rebound for postgres; queries are matched literally.
func NewMockContainer(t *testing.T) (*Container, *Mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockMetrics := metrics.NewMockManager(ctrl)

	sqlDB, sqlMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}

	mockMetrics.EXPECT().NewHistogram("app_sql_stats", gomock.Any(), gomock.Any()).AnyTimes()

	logger := logging.NewMockLogger(logging.DEBUG)

	db, err := sql.New(sqlDB, &sql.DBConfig{Dialect: "postgres", HostName: "localhost:5432", Database: "sakila"},
		logger, mockMetrics)
	if err != nil {
		t.Fatalf("wrapping sqlmock: %v", err)
	}

	c := &Container{
		Logger:         logger,
		appName:        "pagser-test",
		appVersion:     "test",
		metricsManager: mockMetrics,
		registry:       prometheus.NewRegistry(),
		SQL:            db,
	}

	return c, &Mocks{SQL: sqlMock, Metrics: mockMetrics}
}
