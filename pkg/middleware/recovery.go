package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				actorID := ""
				if actor, ok := ActorFromContext(r.Context()); ok {
					actorID = actor.ID
				}
				log.Error("Panic recovered",
					"request_id", RequestIDFromContext(r.Context()),
					"actor_id", actorID,
					"panic", fmt.Sprint(rec),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				_ = apperrors.WriteError(w, apperrors.Internal("Internal server error", nil))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
