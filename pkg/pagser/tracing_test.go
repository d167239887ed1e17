package pagser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/sllt/pagser/pkg/pagser/infra"
	"github.com/sllt/pagser/pkg/pagser/testutil"
)

func TestNewSpanExporter(t *testing.T) {
	tests := []struct {
		exporter, url string
		enabled       bool
		err           error
	}{
		{"", "", false, nil},
		{"none", "", false, nil},
		{"zipkin", "http://localhost:9411/api/v2/spans", true, nil},
		{"ZIPKIN", "http://localhost:9411/api/v2/spans", true, nil},
		{"otlp", "localhost:4317", true, nil},
		{"jaeger", "localhost:14268", false, errUnsupportedExporter},
	}

	for i, tc := range tests {
		exp, err := newSpanExporter(t.Context(), createMockGRPCConfig(false, "TRACE_EXPORTER", tc.exporter, "TRACER_URL", tc.url))

		if tc.err != nil {
			require.ErrorIs(t, err, tc.err, "TEST[%d], Failed.\n", i)
			continue
		}

		require.NoError(t, err, "TEST[%d], Failed.\n", i)
		assert.Equal(t, tc.enabled, exp != nil, "TEST[%d], Failed.\n", i)

		if exp != nil {
			require.NoError(t, exp.Shutdown(t.Context()), "TEST[%d], Failed.\n", i)
		}
	}
}

func TestInitTracer(t *testing.T) {
	c, _ := infra.NewMockContainer(t)

	_ = testutil.StdoutOutputForFunc(func() {
		shutdown, err := initTracer(t.Context(), c,
			createMockGRPCConfig(false, "TRACE_EXPORTER", "zipkin", "TRACER_URL", "http://localhost:9411/api/v2/spans"))
		require.NoError(t, err)

		_, span := otel.Tracer("pagser-test").Start(t.Context(), "probe")
		assert.True(t, span.SpanContext().IsValid())
		span.End()

		// no collector is listening
		_ = shutdown(t.Context())
	})

	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")

	_, err := initTracer(t.Context(), c, createMockGRPCConfig(false, "TRACE_EXPORTER", "jaeger"))
	require.ErrorIs(t, err, errUnsupportedExporter)
}
