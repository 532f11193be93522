package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pitchcount/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_MapsSentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   int
		wantStatus string
	}{
		{err: fmt.Errorf("%w: season must be greater than zero", usecase.ErrInvalidInput), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{err: fmt.Errorf("%w: player_id=1", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{err: fmt.Errorf("%w: circuit open", usecase.ErrDependencyUnavailable), wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{err: fmt.Errorf("fetch season games: %w", context.DeadlineExceeded), wantCode: http.StatusGatewayTimeout, wantStatus: "DEADLINE_EXCEEDED"},
		{err: fmt.Errorf("fetch play-by-play: %w", context.Canceled), wantCode: statusClientClosedRequest, wantStatus: "CANCELLED"},
		{err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStatus, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			body := decodeEnvelope(t, rec)
			errorObj, ok := body["error"].(map[string]any)
			if !ok {
				t.Fatalf("expected error object in response")
			}
			if got, _ := errorObj["status"].(string); got != tt.wantStatus {
				t.Fatalf("expected error status %s, got %v", tt.wantStatus, errorObj["status"])
			}
			items, _ := errorObj["errors"].([]any)
			if len(items) != 1 {
				t.Fatalf("expected one error item, got %v", errorObj["errors"])
			}
			if domain, _ := items[0].(map[string]any)["domain"].(string); domain != errorDomain {
				t.Fatalf("unexpected error domain: %v", domain)
			}
		})
	}
}

func TestClassifyError_Reasons(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, wantReason: "invalidInput"},
		{name: "not found", err: fmt.Errorf("%w: player_id=9", usecase.ErrNotFound), wantReason: "dataNotFound"},
		{name: "stats api down", err: fmt.Errorf("fetch boxscore: %w", usecase.ErrDependencyUnavailable), wantReason: "statsAPIUnavailable"},
		{name: "timeout", err: context.DeadlineExceeded, wantReason: "aggregationTimeout"},
		{name: "canceled", err: context.Canceled, wantReason: "requestCanceled"},
		{name: "unknown", err: errors.New("boom"), wantReason: "internalError"},
	}

	for _, tt := range tests {
		if got := classifyError(tt.err); got.Reason != tt.wantReason {
			t.Fatalf("%s: expected reason %s, got %s", tt.name, tt.wantReason, got.Reason)
		}
	}
}

func TestWriteInternalError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	errorObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "internal server error" {
		t.Fatalf("unexpected message: %v", errorObj["message"])
	}
}
