package validator

import (
	"errors"
	"testing"

	"medizy/pkg/logger"
	"medizy/pkg/model"
	"medizy/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAppointment() *model.Appointment {
	return &model.Appointment{
		PatientID:       "p1",
		DoctorID:        "d1",
		Date:            "2025-06-10",
		Time:            "10:00",
		DurationMinutes: 30,
		Status:          model.AppointmentStatusPending,
		PaymentMode:     model.PaymentModeCash,
		PaymentStatus:   model.PaymentStatusPending,
	}
}

func TestAppointmentValidator_Validate(t *testing.T) {
	v := NewAppointmentValidator(logger.Discard())

	tests := []struct {
		name   string
		mutate func(a *model.Appointment)
		field  string
	}{
		{"valid", func(a *model.Appointment) {}, ""},
		{"missing doctor", func(a *model.Appointment) { a.DoctorID = "" }, "doctor_id"},
		{"bad date", func(a *model.Appointment) { a.Date = "10-06-2025" }, "date"},
		{"bad time", func(a *model.Appointment) { a.Time = "25:00" }, "time"},
		{"negative amount", func(a *model.Appointment) { a.Amount = -1 }, "amount"},
		{"unknown payment mode", func(a *model.Appointment) { a.PaymentMode = "barter" }, "payment_mode"},
		{"unknown status", func(a *model.Appointment) { a.Status = "archived" }, "status"},
		{"duration too long", func(a *model.Appointment) { a.DurationMinutes = 2000 }, "duration_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.mutate(a)

			err := v.Validate(a)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validation.ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestAppointmentValidator_ValidateUpdate(t *testing.T) {
	v := NewAppointmentValidator(logger.Discard())
	amount := 250.0
	negative := -5.0

	assert.NoError(t, v.ValidateUpdate(&model.AppointmentUpdate{Status: model.AppointmentStatusCompleted}))
	assert.NoError(t, v.ValidateUpdate(&model.AppointmentUpdate{Amount: &amount}))
	assert.Error(t, v.ValidateUpdate(&model.AppointmentUpdate{}))
	assert.Error(t, v.ValidateUpdate(&model.AppointmentUpdate{Amount: &negative}))
	assert.Error(t, v.ValidateUpdate(&model.AppointmentUpdate{PaymentStatus: "refunded"}))
}

func TestAppointmentValidator_ValidateReschedule(t *testing.T) {
	v := NewAppointmentValidator(logger.Discard())

	assert.NoError(t, v.ValidateReschedule(&model.RescheduleInput{Date: "2025-06-11", Time: "9:30"}))
	assert.Error(t, v.ValidateReschedule(&model.RescheduleInput{Date: "2025-06-11"}))
	assert.Error(t, v.ValidateReschedule(&model.RescheduleInput{Date: "tomorrow", Time: "09:30"}))
}
