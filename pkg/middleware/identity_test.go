package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medizy/pkg/logger"
	"medizy/pkg/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func actorEcho(t *testing.T, seen *model.Actor) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		*seen = actor
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestIdentity_ValidToken(t *testing.T) {
	token, err := SignToken(testSecret, model.Actor{ID: "doc-1", Role: model.RoleDoctor})
	require.NoError(t, err)

	var seen model.Actor
	h := Identity(testSecret, logger.Discard())(actorEcho(t, &seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, model.Actor{ID: "doc-1", Role: model.RoleDoctor}, seen)
}

func TestIdentity_Rejects(t *testing.T) {
	wrongSecret, err := SignToken("other-secret", model.Actor{ID: "p1", Role: model.RolePatient})
	require.NoError(t, err)

	unknownRole, err := SignToken(testSecret, model.Actor{ID: "p1", Role: "superuser"})
	require.NoError(t, err)

	noID, err := SignToken(testSecret, model.Actor{Role: model.RolePatient})
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{ID: "p1", Role: model.RolePatient}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + wrongSecret},
		{"unknown role", "Bearer " + unknownRole},
		{"missing id", "Bearer " + noID},
		{"unexpected algorithm", "Bearer " + hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := Identity(testSecret, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}
