package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medizy/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpClientSendsTokenAndBody(t *testing.T) {
	var gotAuth, gotPath, gotContentType string
	var gotBody model.RescheduleInput

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"appt-1","token_number":3}}`))
	}))
	defer server.Close()

	appointments := NewAppointmentClient(NewHttpClient(server.URL).WithToken("secret-token"))
	resp, err := appointments.RequestReschedule(context.Background(), "appt-1", model.RescheduleInput{Date: "2025-06-11", Time: "10:00"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "/api/v1/appointments/id/appt-1/reschedule", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "2025-06-11", gotBody.Date)

	var appt model.Appointment
	require.NoError(t, resp.DecodeData(&appt))
	assert.Equal(t, 3, appt.TokenNumber)
}

func TestWithTokenDoesNotMutateOriginal(t *testing.T) {
	base := NewHttpClient("http://example")
	_ = base.WithToken("t")
	assert.Empty(t, base.token)
}

func TestGetErrorMessage(t *testing.T) {
	resp := &Response{Body: []byte(`{"code":"SLOT_UNAVAILABLE","message":"Requested time is not within doctor available slots"}`)}
	assert.Equal(t, "Requested time is not within doctor available slots", GetErrorMessage(resp))

	resp = &Response{Body: []byte(`{"code":"CONFLICT"}`)}
	assert.Equal(t, "CONFLICT", GetErrorMessage(resp))
}

func TestWaitForHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	require.NoError(t, NewHttpClient(server.URL).WaitForHealthy(context.Background(), time.Second))

	down := NewHttpClient("http://127.0.0.1:1")
	assert.Error(t, down.WaitForHealthy(context.Background(), 50*time.Millisecond))
}
