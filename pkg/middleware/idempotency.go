package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	apperrors "medizy/pkg/errors"
)

var (
	ErrRequestInFlight     = errors.New("request with this idempotency key is still in progress")
	ErrFingerprintMismatch = errors.New("idempotency key reused with a different payload")
)

// IdempotencyStore tracks one entry per key. Begin either reserves the key,
// returns the stored response, or reports why the request cannot proceed.
type IdempotencyStore interface {
	Begin(key, fingerprint string) (*CachedResponse, error)
	Complete(key string, response *CachedResponse)
	Abandon(key string)
	Stop()
}

type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

type idempotencyEntry struct {
	fingerprint string
	response    *CachedResponse // nil while the first request is running
	createdAt   time.Time
}

type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		entries: make(map[string]*idempotencyEntry),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *InMemoryIdempotencyStore) Begin(key, fingerprint string) (*CachedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if ok && s.now().Sub(entry.createdAt) > s.ttl {
		delete(s.entries, key)
		ok = false
	}
	if !ok {
		s.entries[key] = &idempotencyEntry{fingerprint: fingerprint, createdAt: s.now()}
		return nil, nil
	}
	if entry.fingerprint != fingerprint {
		return nil, ErrFingerprintMismatch
	}
	if entry.response == nil {
		return nil, ErrRequestInFlight
	}
	return entry.response, nil
}

func (s *InMemoryIdempotencyStore) Complete(key string, response *CachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok {
		entry.response = response
	}
}

// Abandon releases a reservation so the client may retry with the same key.
func (s *InMemoryIdempotencyStore) Abandon(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok && entry.response == nil {
		delete(s.entries, key)
	}
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	interval := s.ttl / 2
	if interval <= 0 || interval > time.Hour {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if s.now().Sub(entry.createdAt) > s.ttl {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

type responseCapture struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rc *responseCapture) WriteHeader(statusCode int) {
	rc.statusCode = statusCode
	rc.ResponseWriter.WriteHeader(statusCode)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the stored 2xx response for a repeated key on POST and
// PATCH. Keys are scoped to the caller, method and path. Failed requests
// release the key so the client can retry.
func Idempotency(store IdempotencyStore, headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = "Idempotency-Key"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := r.Header.Get(headerName)
			if clientKey == "" || (r.Method != http.MethodPost && r.Method != http.MethodPatch) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				_ = apperrors.WriteError(w, apperrors.InvalidInput("Failed to read request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := scopedKey(r, clientKey)
			cached, err := store.Begin(key, fingerprint(body))
			switch {
			case errors.Is(err, ErrRequestInFlight):
				_ = apperrors.WriteError(w, apperrors.Conflict(err.Error()).WithField(headerName))
				return
			case errors.Is(err, ErrFingerprintMismatch):
				_ = apperrors.WriteError(w, apperrors.Validation(err.Error(), map[string]any{"field": headerName}))
				return
			case cached != nil:
				replay(w, cached)
				return
			}

			capture := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
			completed := false
			defer func() {
				if !completed {
					store.Abandon(key)
				}
			}()

			next.ServeHTTP(capture, r)

			if capture.statusCode >= 200 && capture.statusCode < 300 {
				store.Complete(key, &CachedResponse{
					StatusCode: capture.statusCode,
					Headers:    w.Header().Clone(),
					Body:       bytes.Clone(capture.body.Bytes()),
				})
				completed = true
			}
		})
	}
}

func scopedKey(r *http.Request, clientKey string) string {
	owner := "anonymous"
	if actor, ok := ActorFromContext(r.Context()); ok {
		owner = actor.ID
	}
	return owner + "|" + r.Method + "|" + r.URL.Path + "|" + clientKey
}

func fingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func replay(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		if key == RequestIDHeader {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
