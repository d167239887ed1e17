package pagser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sllt/pagser/pkg/pagser/testutil"
)

func TestMetricServer_RunAndShutdown(t *testing.T) {
	port := testutil.GetFreePort(t)
	a, _ := setupTestApp(t, createMockGRPCConfig(false, "METRICS_PORT", fmt.Sprint(port)))
	require.NotNil(t, a.metricServer)

	errCh := make(chan error, 1)

	go func() { errCh <- a.metricServer.Run(a.container) }()

	var resp *http.Response

	require.Eventually(t, func() bool {
		req, _ := http.NewRequestWithContext(t.Context(), http.MethodGet, fmt.Sprintf("http://127.0.0.1:%d/metrics", port), http.NoBody)

		var err error

		resp, err = http.DefaultClient.Do(req)

		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	require.NoError(t, a.metricServer.Shutdown(ctx))
	require.NoError(t, <-errCh)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		desc   string
		setup  func(mock sqlmock.Sqlmock)
		code   int
		status string
	}{
		{"database up", func(mock sqlmock.Sqlmock) {
			mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(int64(1)))
		}, http.StatusOK, `"status":"UP"`},
		{"database down", func(mock sqlmock.Sqlmock) {
			mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection refused"))
		}, http.StatusServiceUnavailable, `"status":"DOWN"`},
	}

	for i, tc := range tests {
		a, mocks := setupTestApp(t, createMockGRPCConfig(false))
		tc.setup(mocks.SQL)

		rec := httptest.NewRecorder()
		req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/.well-known/health", http.NoBody)

		healthHandler(a.container).ServeHTTP(rec, req)

		assert.Equal(t, tc.code, rec.Code, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Contains(t, rec.Body.String(), tc.status, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), "TEST[%d], Failed.\n%s", i, tc.desc)
		require.NoError(t, mocks.SQL.ExpectationsWereMet(), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}
