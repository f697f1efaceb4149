package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/haguru/localauth/internal/models/dto"
	"github.com/haguru/localauth/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitMiddleware(t *testing.T) {
	limited := 0
	limiter := rate.NewLimiter(rate.Limit(0.001), 2)
	h := RateLimitHandlerFunc(limiter, func(*http.Request) { limited++ }, okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			var resp dto.RateLimitResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, MsgTooManyRequests, resp.Message)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, limited)
}

func TestRateLimitMiddleware_NilCallback(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 0)
	h := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "abc-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.NewZerologLoggerWithWriter("test", &buf)
			logger.SetLevel("debug")

			var seenID string
			var seenLogger bool
			h := RequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = RequestIDFromContext(r.Context())
				seenLogger = LoggerFromContext(r.Context(), nil) != nil
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/remembered", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			assert.Equal(t, seenID, got)
			assert.True(t, seenLogger)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), got)
		})
	}
}

func TestFromContext_OutsideRequest(t *testing.T) {
	fallback := zerolog.NewNopLogger()
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, fallback, LoggerFromContext(context.Background(), fallback))
}
