package service

import (
	"fmt"
	"strconv"

	"medizy/pkg/model"
)

func (s *appointmentService) notification(userID, title, body string, appt *model.Appointment) model.NotificationEvent {
	return model.NotificationEvent{
		EventID: newEventID(),
		UserID:  userID,
		Title:   title,
		Body:    body,
		Data: map[string]any{
			"appointment_id": appt.ID,
			"date":           appt.Date,
			"time":           appt.Time,
			"token_number":   appt.TokenNumber,
		},
		OccurredAt: s.now(),
	}
}

func (s *appointmentService) email(userID, subject, template string, data map[string]string) model.EmailEvent {
	return model.EmailEvent{
		EventID:    newEventID(),
		UserID:     userID,
		Subject:    subject,
		Template:   template,
		Data:       data,
		OccurredAt: s.now(),
	}
}

func appointmentEmailData(appt *model.Appointment) map[string]string {
	return map[string]string{
		"appointment_id": appt.ID,
		"patient_id":     appt.PatientID,
		"doctor_id":      appt.DoctorID,
		"date":           appt.Date,
		"time":           appt.Time,
		"token_number":   strconv.Itoa(appt.TokenNumber),
		"reason":         appt.Reason,
	}
}

func (s *appointmentService) notifyCreated(appt *model.Appointment) {
	s.notifier.Notify(s.notification(appt.DoctorID,
		"New appointment",
		fmt.Sprintf("Appointment #%d booked for %s at %s", appt.TokenNumber, appt.Date, appt.Time),
		appt,
	))

	data := appointmentEmailData(appt)
	s.notifier.SendEmail(s.email(appt.PatientID, "Appointment Confirmation", model.EmailTemplateAppointmentConfirmation, data))
	s.notifier.SendEmail(s.email(appt.DoctorID, "New Appointment Booked", model.EmailTemplateAppointmentConfirmation, data))
}

func (s *appointmentService) notifyRescheduleRequested(appt *model.Appointment, input *model.RescheduleInput) {
	s.notifier.Notify(s.notification(appt.DoctorID,
		"Reschedule requested",
		fmt.Sprintf("Appointment #%d on %s at %s: reschedule to %s at %s requested", appt.TokenNumber, appt.Date, appt.Time, input.Date, input.Time),
		appt,
	))

	s.notifier.SendEmail(s.email(appt.PatientID, "Reschedule Request Submitted", model.EmailTemplateRescheduleNotification,
		rescheduleEmailData(appt, appt.Date, appt.Time, input.Date, input.Time, model.RequestStatusPending)))
}

func (s *appointmentService) notifyRescheduleAccepted(appt *model.Appointment, oldDate, oldTime string) {
	s.notifier.Notify(s.notification(appt.PatientID,
		"Appointment rescheduled",
		fmt.Sprintf("Your appointment moved from %s %s to %s %s", oldDate, oldTime, appt.Date, appt.Time),
		appt,
	))

	s.notifier.SendEmail(s.email(appt.PatientID, "Appointment Rescheduled", model.EmailTemplateRescheduleNotification,
		rescheduleEmailData(appt, oldDate, oldTime, appt.Date, appt.Time, model.RequestStatusAccepted)))
}

func (s *appointmentService) notifyRescheduleRejected(appt *model.Appointment, request model.RescheduleRequest) {
	s.notifier.Notify(s.notification(request.RequestedBy,
		"Reschedule request declined",
		fmt.Sprintf("Your request to move to %s at %s was declined", request.Date, request.Time),
		appt,
	))

	s.notifier.SendEmail(s.email(appt.PatientID, "Reschedule Request Declined", model.EmailTemplateRescheduleNotification,
		rescheduleEmailData(appt, appt.Date, appt.Time, request.Date, request.Time, model.RequestStatusRejected)))
}

func (s *appointmentService) notifyStatusChanged(appt *model.Appointment, actor model.Actor) {
	recipient := appt.PatientID
	if actor.ID == appt.PatientID {
		recipient = appt.DoctorID
	}
	s.notifier.Notify(s.notification(recipient,
		"Appointment "+appt.Status,
		fmt.Sprintf("Appointment #%d on %s at %s is now %s", appt.TokenNumber, appt.Date, appt.Time, appt.Status),
		appt,
	))
}

func rescheduleEmailData(appt *model.Appointment, oldDate, oldTime, newDate, newTime, status string) map[string]string {
	data := appointmentEmailData(appt)
	data["old_date"] = oldDate
	data["old_time"] = oldTime
	data["new_date"] = newDate
	data["new_time"] = newTime
	data["status"] = status
	return data
}
