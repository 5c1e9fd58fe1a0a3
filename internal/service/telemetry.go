package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/utafrali/wishlist/pkg/errors"
	"github.com/utafrali/wishlist/pkg/tracing"
)

var tracer = tracing.Tracer("github.com/utafrali/wishlist/internal/service")

// Outcome label values for wishlistOperations.
const (
	outcomeSuccess      = "success"
	outcomeConflict     = "conflict"
	outcomeNotFound     = "not_found"
	outcomeUnauthorized = "unauthorized"
	outcomeError        = "error"
)

var wishlistOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wishlist_operations_total",
		Help: "Total number of wishlist operations by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

func recordOperation(op string, err error) {
	wishlistOperations.WithLabelValues(op, outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, apperrors.ErrConflict):
		return outcomeConflict
	case errors.Is(err, apperrors.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return outcomeUnauthorized
	default:
		return outcomeError
	}
}

// recordSpanError marks the span failed for unexpected errors only; a
// NotFound or Conflict is a normal client outcome.
func recordSpanError(span trace.Span, err error) {
	if outcomeOf(err) != outcomeError {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
