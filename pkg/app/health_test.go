package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medizy/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		ping   error
		status int
		body   string
	}{
		{"health always ok", "/health", errors.New("down"), http.StatusOK, `"ok"`},
		{"ready with database", "/ready", nil, http.StatusOK, `"ready"`},
		{"ready without database", "/ready", errors.New("down"), http.StatusServiceUnavailable, `"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(fakePinger{err: tt.ping}, logger.Discard()).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
