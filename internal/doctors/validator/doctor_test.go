package validator

import (
	"testing"

	"medizy/pkg/logger"
	"medizy/pkg/model"
	"medizy/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule map[string][]string
		wantErr  bool
	}{
		{"empty", map[string][]string{}, false},
		{"valid", map[string][]string{"Monday": {"09:00-12:00", "14:00-17:00"}, "Friday": {"10:00-11:00"}}, false},
		{"touching ranges", map[string][]string{"Monday": {"09:00-12:00", "12:00-13:00"}}, false},
		{"unknown day", map[string][]string{"Funday": {"09:00-12:00"}}, true},
		{"lowercase day", map[string][]string{"monday": {"09:00-12:00"}}, true},
		{"malformed range", map[string][]string{"Monday": {"9-12"}}, true},
		{"inverted range", map[string][]string{"Monday": {"12:00-09:00"}}, true},
		{"overlap", map[string][]string{"Tuesday": {"14:00-17:00", "09:00-15:00"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	v := NewDoctorValidator(logger.Discard())

	require.NoError(t, v.ValidateSlot(&model.SlotInput{Date: "2025-06-11", From: "10:00", To: "12:00"}))

	err := v.ValidateSlot(&model.SlotInput{Date: "2025-06-11", From: "12:00", To: "10:00"})
	var verrs validation.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "to", verrs[0].Field)

	err = v.ValidateSlot(&model.SlotInput{Date: "2025-06-11", From: "25:00", To: "26:00"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "from", verrs[0].Field)

	err = v.ValidateSlot(&model.SlotInput{Date: "11/06/2025", From: "10:00", To: "12:00"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date", verrs[0].Field)
}

func TestValidateSchedule(t *testing.T) {
	v := NewDoctorValidator(logger.Discard())

	require.NoError(t, v.ValidateSchedule(&model.ScheduleInput{Schedule: map[string][]string{"Monday": {"09:00-10:00"}}}))

	err := v.ValidateSchedule(&model.ScheduleInput{Schedule: map[string][]string{"Monday": {"09:00-10:00", "09:30-11:00"}}})
	var verrs validation.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "schedule", verrs[0].Field)
}

func TestValidateDoctor(t *testing.T) {
	v := NewDoctorValidator(logger.Discard())

	require.NoError(t, v.Validate(&model.Doctor{UserID: "doctor-1", Fees: 300}))

	err := v.Validate(&model.Doctor{UserID: "", Fees: -1})
	var verrs validation.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}
