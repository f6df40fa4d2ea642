package middleware

import (
	"mime"
	"net/http"

	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"
)

// ContentTypeValidation requires JSON on requests that carry a body. Action
// endpoints such as accept or reject are posted without one and pass through.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !carriesBody(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Content-Type")
			mediaType, _, err := mime.ParseMediaType(header)
			if err != nil || mediaType != "application/json" {
				log.Warn("Invalid Content-Type header",
					"request_id", RequestIDFromContext(r.Context()),
					"content_type", header,
					"path", r.URL.Path,
					"method", r.Method,
				)
				_ = apperrors.WriteError(w, apperrors.UnsupportedMediaType(header))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func carriesBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	return r.ContentLength != 0 || len(r.TransferEncoding) > 0
}
