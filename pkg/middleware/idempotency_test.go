package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medizy/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestIdempotency_ReplaysPerActor(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))

	send := func(actorID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		req.Header.Set("Idempotency-Key", "k1")
		req = req.WithContext(WithActor(req.Context(), model.Actor{ID: actorID, Role: model.RolePatient}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("p1")
	second := send("p1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, calls)

	send("p2")
	assert.Equal(t, 2, calls, "another actor with the same key is not replayed")
}

func TestIdempotency_DoesNotCacheFailures(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "Idempotency-Key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set("Idempotency-Key", "k2")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
}

func TestIdempotency_RejectsReusedKeyWithDifferentBody(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "k3")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send(`{"time":"10:00"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, send(`{"time":"11:00"}`))
}

func TestIdempotency_ConcurrentDuplicateIsRejected(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	entered := make(chan struct{})
	release := make(chan struct{})
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusCreated)
	}))

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "k4")
		return req
	}

	firstDone := make(chan int)
	go func() {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newReq())
		firstDone <- rec.Code
	}()
	<-entered

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newReq())
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(release)
	assert.Equal(t, http.StatusCreated, <-firstDone)
}

func TestIdempotency_IgnoresSafeMethods(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil)
		req.Header.Set("Idempotency-Key", "k5")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
}
