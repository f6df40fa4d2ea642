package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Code
}

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequestLogging_AssignsAndEchoesRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil)
	req.Header.Set(RequestIDHeader, "upstream-1234")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-1234", seen)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil)
	req.Header.Set(RequestIDHeader, "bad id\n")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "bad id\n", seen)
}

func TestContentTypeValidation(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{name: "json body", method: http.MethodPost, body: `{}`, contentType: "application/json", want: http.StatusNoContent},
		{name: "json with charset", method: http.MethodPatch, body: `{}`, contentType: "application/json; charset=utf-8", want: http.StatusNoContent},
		{name: "bodyless accept", method: http.MethodPost, want: http.StatusNoContent},
		{name: "get ignores header", method: http.MethodGet, contentType: "text/plain", want: http.StatusNoContent},
		{name: "form body", method: http.MethodPost, body: "a=b", contentType: "application/x-www-form-urlencoded", want: http.StatusUnsupportedMediaType},
		{name: "missing header", method: http.MethodPut, body: `{}`, want: http.StatusUnsupportedMediaType},
	}

	h := ContentTypeValidation(logger.Discard())(noContent)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, "/api/v1/appointments", strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, "/api/v1/appointments/id/x/reschedule/y/accept", nil)
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnsupportedMediaType {
				assert.Equal(t, apperrors.CodeUnsupportedType, decodeErrorCode(t, rec))
			}
		})
	}
}

func TestRequestTimeout_RepliesWhenHandlerIsSlow(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	h := RequestTimeout(20*time.Millisecond, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, apperrors.CodeTimeout, decodeErrorCode(t, rec))
}

func TestRequestTimeout_FastHandlerUntouched(t *testing.T) {
	h := RequestTimeout(time.Second, logger.Discard())(noContent)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperrors.CodeInternal, decodeErrorCode(t, rec))
}
