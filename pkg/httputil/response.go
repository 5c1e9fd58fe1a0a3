package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/wishlist/pkg/errors"
	"github.com/utafrali/wishlist/pkg/logger"
	"github.com/utafrali/wishlist/pkg/validator"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageSuccessful is the default message for successful responses.
const MessageSuccessful = "Successful"

// SuccessResponse is the envelope written for every 2xx response.
type SuccessResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta"`
}

// ErrorResponse is the envelope written for every non-2xx response.
type ErrorResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Errors  ErrorDetail    `json:"errors"`
	Meta    map[string]any `json:"meta"`
}

// ErrorDetail is the machine-readable part of an error envelope.
type ErrorDetail struct {
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Envelope is the union of both envelope shapes. Clients decode into it and
// branch on Status.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  *ErrorDetail    `json:"errors,omitempty"`
	Meta    map[string]any  `json:"meta"`
}

// WriteJSON writes a JSON response with the given status code.
// Headers are already sent when encoding fails, so the error is dropped.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope. A nil payload is sent as an empty
// array.
func WriteSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if data == nil {
		data = []any{}
	}
	WriteJSON(w, status, SuccessResponse{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
		Meta:    meta(r),
	})
}

// WriteFailure writes an error envelope with an explicit status and code.
func WriteFailure(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Errors:  ErrorDetail{Code: code},
		Meta:    meta(r),
	})
}

// WriteError writes an error envelope derived from err. The status comes
// from apperrors.HTTPStatus. AppErrors keep their code and message; bare
// sentinels get a generic one. Anything mapping to 500 is answered with an
// opaque message and logged with the request-scoped logger (falling back to
// the given logger).
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		WriteFailure(w, r, status, appErr.Code, appErr.Message)
		return
	}

	switch status {
	case http.StatusNotFound:
		WriteFailure(w, r, status, "NOT_FOUND", "resource not found")
		return
	case http.StatusConflict:
		WriteFailure(w, r, status, "CONFLICT", "resource conflict")
		return
	case http.StatusUnauthorized:
		WriteFailure(w, r, status, "UNAUTHORIZED", "Unauthenticated.")
		return
	}

	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
	WriteFailure(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
}

// WriteValidationError writes a 400 envelope. Validation errors from the
// validator package carry per-field messages.
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteFieldErrors(w, r, valErr.Fields())
		return
	}

	WriteFailure(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error())
}

// WriteFieldErrors writes a 400 VALIDATION_ERROR envelope with the given
// per-field messages.
func WriteFieldErrors(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Status:  StatusError,
		Message: "request validation failed",
		Errors:  ErrorDetail{Code: "VALIDATION_ERROR", Fields: fields},
		Meta:    meta(r),
	})
}

// meta builds the envelope meta object. It is never nil so clients always
// see an object.
func meta(r *http.Request) map[string]any {
	m := make(map[string]any, 1)
	if r == nil {
		return m
	}
	if id := logger.CorrelationIDFromContext(r.Context()); id != "" {
		m["request_id"] = id
	}
	return m
}
