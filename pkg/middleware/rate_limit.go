package middleware

import (
	"net/http"
	"sync"
	"time"

	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"
)

// KeyExtractor returns the rate limit bucket for a request. An empty key
// bypasses the limiter.
type KeyExtractor func(r *http.Request) string

type ActorRateLimiter struct {
	mu           sync.RWMutex
	requests     map[string][]time.Time
	limit        int
	window       time.Duration
	keyExtractor KeyExtractor
	log          *logger.Logger
	stopCh       chan struct{}
	stopOnce     sync.Once
}

func NewActorRateLimiter(limit int, window time.Duration, extractor KeyExtractor, log *logger.Logger) *ActorRateLimiter {
	limiter := &ActorRateLimiter{
		requests:     make(map[string][]time.Time),
		limit:        limit,
		window:       window,
		keyExtractor: extractor,
		log:          log,
		stopCh:       make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *ActorRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ActorRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *ActorRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	timestamps := rl.requests[key]
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

func ActorRateLimit(limiter *ActorRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractKey(r, limiter.keyExtractor)

			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(key) {
				rejectRateLimited(w, limiter.log, r, key)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractKey(r *http.Request, extractor KeyExtractor) string {
	if extractor == nil {
		return DefaultActorExtractor(r)
	}
	return extractor(r)
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, key string) {
	requestID := RequestIDFromContext(r.Context())

	log.Warn("Rate limit exceeded",
		"request_id", requestID,
		"key", key,
		"path", r.URL.Path,
	)

	_ = apperrors.WriteError(w, apperrors.RateLimited())
}

// DefaultActorExtractor buckets by authenticated actor id. It must run after Identity.
func DefaultActorExtractor(r *http.Request) string {
	if actor, ok := ActorFromContext(r.Context()); ok {
		return actor.ID
	}
	return ""
}
