package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleServiceErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{ErrItineraryNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", ErrDestinationNotFound), http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrEmailAlreadyExists, http.StatusConflict},
		{ErrNoSuitableDestinations, http.StatusBadRequest},
		{ErrRateLimited, http.StatusTooManyRequests},
		{NewFieldError("duration", "must be between %d and %d", 1, 30), http.StatusBadRequest},
		{fmt.Errorf("boom: %w", ErrDatabaseError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("trace_id", "trace-1")

		HandleServiceError(c, tt.err)

		if w.Code != tt.code {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.code, w.Code)
		}
		var body APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Status != "error" || body.TraceID != "trace-1" || body.Code != tt.code {
			t.Fatalf("unexpected envelope %+v", body)
		}
	}
}

func TestRespondSuccessWithoutTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, gin.H{"ok": true}, "done")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
