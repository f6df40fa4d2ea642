package scheduling

import (
	"errors"
	"time"

	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRequestNotFound   = errors.New("reschedule request not found")
	ErrRequestResolved   = errors.New("reschedule request already resolved")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var transitions = map[string][]string{
	model.AppointmentStatusPending:   {model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled},
	model.AppointmentStatusConfirmed: {model.AppointmentStatusCompleted, model.AppointmentStatusCancelled},
}

// CanTransition reports whether the state machine allows from -> to.
// Cancelled and completed are terminal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions lists the statuses reachable from the given one.
func AllowedTransitions(from string) []string {
	return transitions[from]
}

func NewRescheduleRequest(requestedBy, date, hhmm string, now time.Time) model.RescheduleRequest {
	return model.RescheduleRequest{
		ID:          primitive.NewObjectID().Hex(),
		RequestedBy: requestedBy,
		Date:        date,
		Time:        hhmm,
		Status:      model.RequestStatusPending,
		CreatedAt:   now,
	}
}

// FindRequest returns the index of the request with the given id.
func FindRequest(appt *model.Appointment, requestID string) (int, bool) {
	for i := range appt.RescheduleRequests {
		if appt.RescheduleRequests[i].ID == requestID {
			return i, true
		}
	}
	return -1, false
}

// HasAcceptedRequest reports whether a reschedule was already applied.
func HasAcceptedRequest(appt *model.Appointment) bool {
	for i := range appt.RescheduleRequests {
		if appt.RescheduleRequests[i].Status == model.RequestStatusAccepted {
			return true
		}
	}
	return false
}

// AcceptRequest moves appt to the request's date and time, marks the request
// accepted and every sibling rejected. appt is modified in place and must be
// persisted as a whole.
func AcceptRequest(appt *model.Appointment, requestID string, now time.Time) error {
	idx, ok := FindRequest(appt, requestID)
	if !ok {
		return ErrRequestNotFound
	}
	target := &appt.RescheduleRequests[idx]
	if target.Status != model.RequestStatusPending {
		return ErrRequestResolved
	}

	appt.Date = target.Date
	appt.Time = target.Time

	for i := range appt.RescheduleRequests {
		req := &appt.RescheduleRequests[i]
		if i == idx {
			req.Status = model.RequestStatusAccepted
			req.ResolvedAt = &now
			continue
		}
		if req.Status == model.RequestStatusPending {
			req.ResolvedAt = &now
		}
		req.Status = model.RequestStatusRejected
	}
	return nil
}

func RejectRequest(appt *model.Appointment, requestID string, now time.Time) error {
	idx, ok := FindRequest(appt, requestID)
	if !ok {
		return ErrRequestNotFound
	}
	req := &appt.RescheduleRequests[idx]
	if req.Status != model.RequestStatusPending {
		return ErrRequestResolved
	}
	req.Status = model.RequestStatusRejected
	req.ResolvedAt = &now
	return nil
}
