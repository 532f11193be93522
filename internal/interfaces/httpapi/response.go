package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pitchcount/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	envelopeVersion = "2.0"
	errorDomain     = "pitchcount"

	statusClientClosedRequest = 499
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorKind is how one class of pipeline failure is reported to clients.
type errorKind struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalErrorKind = errorKind{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorKinds is checked in order; the first target found in the chain wins.
var errorKinds = []struct {
	target error
	kind   errorKind
}{
	{usecase.ErrInvalidInput, errorKind{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, errorKind{HTTPStatus: http.StatusNotFound, Reason: "dataNotFound", Status: "NOT_FOUND"}},
	{usecase.ErrDependencyUnavailable, errorKind{HTTPStatus: http.StatusServiceUnavailable, Reason: "statsAPIUnavailable", Status: "UNAVAILABLE"}},
	{context.DeadlineExceeded, errorKind{HTTPStatus: http.StatusGatewayTimeout, Reason: "aggregationTimeout", Status: "DEADLINE_EXCEEDED"}},
	{context.Canceled, errorKind{HTTPStatus: statusClientClosedRequest, Reason: "requestCanceled", Status: "CANCELLED"}},
}

func classifyError(err error) errorKind {
	for _, entry := range errorKinds {
		if errors.Is(err, entry.target) {
			return entry.kind
		}
	}
	return internalErrorKind
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: envelopeVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := classifyError(err)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("error.reason", kind.Reason))
	writeJSON(w, kind.HTTPStatus, errorEnvelope(kind, err.Error()))
}

// writeInternalError hides the cause; used for recovered handler panics.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("error.reason", internalErrorKind.Reason))
	writeJSON(w, internalErrorKind.HTTPStatus, errorEnvelope(internalErrorKind, "internal server error"))
}

func errorEnvelope(kind errorKind, message string) envelope {
	return envelope{
		APIVersion: envelopeVersion,
		Error: &errorBody{
			Code:    kind.HTTPStatus,
			Message: message,
			Status:  kind.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: kind.Reason, Message: message}},
		},
	}
}
