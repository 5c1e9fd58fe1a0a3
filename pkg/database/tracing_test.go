package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/utafrali/wishlist/pkg/errors"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		tp.Shutdown(context.Background()) //nolint:errcheck
		otel.SetTracerProvider(prev)
	})

	return exporter
}

func TestTraceQuery_Success(t *testing.T) {
	exporter := setupTestTracer(t)

	_, end := TraceQuery(context.Background(), "product.GetByID", "SELECT id FROM products WHERE id = $1")
	end(nil)

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)

	span := spans[0]
	assert.Equal(t, "db.product.GetByID", span.Name)

	attrs := make(map[string]string)
	for _, a := range span.Attributes {
		attrs[string(a.Key)] = a.Value.Emit()
	}
	assert.Equal(t, "postgresql", attrs["db.system"])
	assert.Equal(t, "product.GetByID", attrs["db.operation"])
	assert.Equal(t, "SELECT id FROM products WHERE id = $1", attrs["db.statement"])
	assert.Equal(t, codes.Unset, span.Status.Code)
}

func TestTraceQuery_Error(t *testing.T) {
	exporter := setupTestTracer(t)

	_, end := TraceQuery(context.Background(), "wishlist.Add", "INSERT INTO wishlists (user_id, product_id) VALUES ($1, $2)")
	end(errors.New("connection refused"))

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.NotEmpty(t, spans[0].Events, "expected error event on span")
}

func TestTraceQuery_ExpectedErrors_NotMarkedFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing row", apperrors.NotFound("product", int64(404))},
		{"duplicate entry", apperrors.Conflict("Product already in wishlist")},
		{"deleted user", apperrors.Unauthorized("user 3 no longer exists")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := setupTestTracer(t)
			op := "test.Expected." + tt.name
			_, end := TraceQuery(context.Background(), op, "SELECT 1")
			end(tt.err)

			spans := exporter.GetSpans()
			require.NotEmpty(t, spans)
			assert.Equal(t, codes.Unset, spans[0].Status.Code)
			assert.Empty(t, spans[0].Events)

			var m dto.Metric
			require.NoError(t, queryDuration.WithLabelValues(op, "rejected").(prometheus.Metric).Write(&m))
			assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
		})
	}
}

func TestQueryOutcome(t *testing.T) {
	assert.Equal(t, "ok", queryOutcome(nil))
	assert.Equal(t, "rejected", queryOutcome(fmt.Errorf("get product: %w", apperrors.NotFound("product", 1))))
	assert.Equal(t, "rejected", queryOutcome(apperrors.Conflict("dup")))
	assert.Equal(t, "error", queryOutcome(errors.New("connection reset by peer")))
}

func TestTraceQuery_ChildOfParentSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	ctx, parent := otel.Tracer("test").Start(context.Background(), "parent")
	_, end := TraceQuery(ctx, "wishlist.List", "SELECT 1")
	end(nil)
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent.SpanID())
}

func TestTraceQuery_RecordsDuration(t *testing.T) {
	setupTestTracer(t)

	before := testutil.CollectAndCount(queryDuration)
	_, end := TraceQuery(context.Background(), "test.RecordsDuration", "SELECT 1")
	end(nil)

	assert.Equal(t, before+1, testutil.CollectAndCount(queryDuration))
}

func TestSlowQueryLogging_SlowQuery(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	SetSlowQueryLogging(time.Nanosecond, slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), "SlowSelect", "SELECT * FROM wishlists")
	end(nil)

	out := buf.String()
	assert.Contains(t, out, "slow query detected")
	assert.Contains(t, out, "SlowSelect")
	assert.Contains(t, out, "SELECT * FROM wishlists")
}

func TestSlowQueryLogging_FastQuery_NoLog(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	SetSlowQueryLogging(time.Hour, slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), "FastSelect", "SELECT 1")
	end(nil)

	assert.NotContains(t, buf.String(), "slow query detected")
}

func TestSlowQueryLogging_Disabled(t *testing.T) {
	setupTestTracer(t)
	SetSlowQueryLogging(0, nil)

	_, end := TraceQuery(context.Background(), "AnyOp", "SELECT 1")
	assert.NotPanics(t, func() { end(nil) })
}

func TestSlowQueryLogging_WithError(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	SetSlowQueryLogging(time.Nanosecond, slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), "FailedQuery", "INSERT INTO t VALUES ($1)")
	end(errors.New("unique constraint violation"))

	out := buf.String()
	assert.Contains(t, out, "slow query detected")
	assert.Contains(t, out, "unique constraint violation")
}

func TestSetSlowQueryLogging_Concurrent(t *testing.T) {
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			SetSlowQueryLogging(time.Duration(i)*time.Millisecond, logger)
		}
	}()

	for i := 0; i < 100; i++ {
		getSlowQueryConfig()
	}
	<-done
}
