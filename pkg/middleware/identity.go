package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"
	"medizy/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

const ActorKey contextKey = "actor"

// Claims mirrors the tokens issued by the auth service.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity verifies HS256 bearer tokens and stores the caller as a model.Actor
// in the request context. Requests without a valid token are rejected.
func Identity(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				rejectUnauthorized(w, log, r, "missing bearer token")
				return
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return key, nil
			})
			if err != nil || !token.Valid {
				rejectUnauthorized(w, log, r, "invalid token")
				return
			}

			if claims.ID == "" || !knownRole(claims.Role) {
				rejectUnauthorized(w, log, r, "token is missing identity claims")
				return
			}

			ctx := WithActor(r.Context(), model.Actor{ID: claims.ID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(model.Actor)
	return actor, ok
}

// SignToken issues a token in the auth service's format. Used by tooling and tests.
func SignToken(secret string, actor model.Actor) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: actor.ID, Role: actor.Role})
	return token.SignedString([]byte(secret))
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func knownRole(role string) bool {
	switch role {
	case model.RolePatient, model.RoleDoctor, model.RoleAdmin:
		return true
	}
	return false
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	requestID := RequestIDFromContext(r.Context())

	log.Warn("Unauthorized request",
		"request_id", requestID,
		"reason", reason,
		"path", r.URL.Path,
	)

	_ = apperrors.WriteError(w, apperrors.Unauthorized(reason))
}
