package testutil

import (
	"medizy/pkg/model"
)

type AppointmentBuilder struct {
	appt model.Appointment
}

func NewAppointmentBuilder(doctorUserID string) *AppointmentBuilder {
	return &AppointmentBuilder{
		appt: model.Appointment{
			DoctorID: doctorUserID,
			Date:     "2030-01-07",
			Time:     "09:00",
			Reason:   "Routine check-up",
		},
	}
}

func (b *AppointmentBuilder) At(date, hhmm string) *AppointmentBuilder {
	b.appt.Date = date
	b.appt.Time = hhmm
	return b
}

func (b *AppointmentBuilder) WithDuration(minutes int) *AppointmentBuilder {
	b.appt.DurationMinutes = minutes
	return b
}

func (b *AppointmentBuilder) ForPatient(patientID string) *AppointmentBuilder {
	b.appt.PatientID = patientID
	return b
}

func (b *AppointmentBuilder) Build() *model.Appointment {
	appt := b.appt
	return &appt
}

// MondayDoctor works 09:00-12:00 and 13:00-17:00 on Mondays. 2030-01-07 is a Monday.
func MondayDoctor() *model.Doctor {
	return &model.Doctor{
		Qualifications:  "MBBS",
		ExperienceYears: 8,
		Fees:            500,
		Schedule: map[string][]string{
			"Monday": {"09:00-12:00", "13:00-17:00"},
		},
	}
}
