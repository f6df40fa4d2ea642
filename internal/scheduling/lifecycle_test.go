package scheduling

import (
	"fmt"
	"testing"
	"time"

	"medizy/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	statuses := []string{
		model.AppointmentStatusPending,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
	}
	allowed := map[[2]string]bool{
		{model.AppointmentStatusPending, model.AppointmentStatusConfirmed}:   true,
		{model.AppointmentStatusPending, model.AppointmentStatusCancelled}:   true,
		{model.AppointmentStatusConfirmed, model.AppointmentStatusCompleted}: true,
		{model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			assert.Equal(t, allowed[[2]string{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.Empty(t, AllowedTransitions(model.AppointmentStatusCancelled))
	assert.Empty(t, AllowedTransitions(model.AppointmentStatusCompleted))
}

func withRequests(n int) *model.Appointment {
	a := &model.Appointment{ID: "a1", DoctorID: "d1", Date: "2025-06-10", Time: "10:00", Status: model.AppointmentStatusConfirmed}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		a.RescheduleRequests = append(a.RescheduleRequests,
			NewRescheduleRequest("p1", fmt.Sprintf("2025-06-%02d", 11+i), "11:00", now))
	}
	return a
}

func TestNewRescheduleRequest(t *testing.T) {
	now := time.Now()
	r1 := NewRescheduleRequest("p1", "2025-06-11", "11:00", now)
	r2 := NewRescheduleRequest("p1", "2025-06-11", "11:00", now)

	assert.NotEmpty(t, r1.ID)
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, model.RequestStatusPending, r1.Status)
	assert.Nil(t, r1.ResolvedAt)
}

func TestAcceptRequest_RejectsSiblings(t *testing.T) {
	a := withRequests(3)
	target := a.RescheduleRequests[1]
	now := time.Now()

	require.NoError(t, AcceptRequest(a, target.ID, now))

	assert.Equal(t, target.Date, a.Date)
	assert.Equal(t, target.Time, a.Time)

	accepted := 0
	for _, r := range a.RescheduleRequests {
		require.NotNil(t, r.ResolvedAt)
		if r.Status == model.RequestStatusAccepted {
			accepted++
			assert.Equal(t, target.ID, r.ID)
		} else {
			assert.Equal(t, model.RequestStatusRejected, r.Status)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.True(t, HasAcceptedRequest(a))
}

func TestAcceptRequest_SecondAcceptFails(t *testing.T) {
	a := withRequests(2)
	first, second := a.RescheduleRequests[0].ID, a.RescheduleRequests[1].ID

	require.NoError(t, AcceptRequest(a, first, time.Now()))
	assert.ErrorIs(t, AcceptRequest(a, second, time.Now()), ErrRequestResolved)
	assert.ErrorIs(t, AcceptRequest(a, first, time.Now()), ErrRequestResolved)
}

func TestAcceptRequest_NotFoundLeavesStateUntouched(t *testing.T) {
	a := withRequests(1)
	before := *a
	before.RescheduleRequests = append([]model.RescheduleRequest(nil), a.RescheduleRequests...)

	assert.ErrorIs(t, AcceptRequest(a, "missing", time.Now()), ErrRequestNotFound)
	assert.Equal(t, before, *a)
}

func TestRejectRequest(t *testing.T) {
	a := withRequests(2)
	id := a.RescheduleRequests[0].ID

	require.NoError(t, RejectRequest(a, id, time.Now()))
	assert.Equal(t, model.RequestStatusRejected, a.RescheduleRequests[0].Status)
	assert.Equal(t, model.RequestStatusPending, a.RescheduleRequests[1].Status)
	assert.Equal(t, "2025-06-10", a.Date)

	assert.ErrorIs(t, RejectRequest(a, id, time.Now()), ErrRequestResolved)
	assert.ErrorIs(t, RejectRequest(a, "missing", time.Now()), ErrRequestNotFound)
}
