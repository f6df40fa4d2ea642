package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"
)

// guardedWriter drops anything the handler writes after the deadline fired.
type guardedWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	expired  bool
	answered bool
}

func (gw *guardedWriter) WriteHeader(code int) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.expired || gw.answered {
		return
	}
	gw.answered = true
	gw.ResponseWriter.WriteHeader(code)
}

func (gw *guardedWriter) Write(b []byte) (int, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.expired {
		return 0, http.ErrHandlerTimeout
	}
	gw.answered = true
	return gw.ResponseWriter.Write(b)
}

// expire claims the response for the timeout reply. It fails once the handler
// has started answering.
func (gw *guardedWriter) expire() bool {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.answered {
		return false
	}
	gw.expired = true
	return true
}

// RequestTimeout bounds each request with a deadline. Repositories and the
// slot lock poll observe it through the request context.
func RequestTimeout(timeout time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
					close(done)
				}()
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			finish := func() {
				<-done
				select {
				case p := <-panicked:
					panic(p)
				default:
				}
			}

			select {
			case <-done:
				finish()
			case <-ctx.Done():
				if !gw.expire() {
					finish()
					return
				}
				log.Warn("Request timed out",
					"request_id", RequestIDFromContext(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"timeout", timeout,
				)
				_ = apperrors.WriteError(w, apperrors.Timeout("Request timed out"))
			}
		})
	}
}
