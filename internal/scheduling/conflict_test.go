package scheduling

import (
	"testing"

	"medizy/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appt(id, doctor, date, hhmm string, duration int, status string) *model.Appointment {
	return &model.Appointment{
		ID:              id,
		DoctorID:        doctor,
		Date:            date,
		Time:            hhmm,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestFindConflict(t *testing.T) {
	existing := []*model.Appointment{
		appt("a1", "d1", "2025-06-10", "10:00", 30, model.AppointmentStatusConfirmed),
	}

	tests := []struct {
		name      string
		candidate Candidate
		existing  []*model.Appointment
		excludeID string
		want      bool
	}{
		{"overlapping start", Candidate{"d1", "2025-06-10", 615, 30}, existing, "", true},
		{"back to back", Candidate{"d1", "2025-06-10", 630, 30}, existing, "", false},
		{"ends exactly at start", Candidate{"d1", "2025-06-10", 570, 30}, existing, "", false},
		{"other doctor", Candidate{"d2", "2025-06-10", 600, 30}, existing, "", false},
		{"other date", Candidate{"d1", "2025-06-11", 600, 30}, existing, "", false},
		{"self excluded", Candidate{"d1", "2025-06-10", 600, 30}, existing, "a1", false},
		{
			"cancelled ignored",
			Candidate{"d1", "2025-06-10", 600, 30},
			[]*model.Appointment{appt("a2", "d1", "2025-06-10", "10:00", 30, model.AppointmentStatusCancelled)},
			"", false,
		},
		{
			"completed still blocks",
			Candidate{"d1", "2025-06-10", 600, 30},
			[]*model.Appointment{appt("a2", "d1", "2025-06-10", "10:00", 30, model.AppointmentStatusCompleted)},
			"", true,
		},
		{
			"existing duration defaults to 30",
			Candidate{"d1", "2025-06-10", 625, 10},
			[]*model.Appointment{appt("a3", "d1", "2025-06-10", "10:00", 0, model.AppointmentStatusPending)},
			"", true,
		},
		{
			"candidate duration defaults to 30",
			Candidate{"d1", "2025-06-10", 580, 0},
			existing,
			"", true,
		},
		{
			"empty existing time is midnight",
			Candidate{"d1", "2025-06-10", 10, 30},
			[]*model.Appointment{appt("a4", "d1", "2025-06-10", "", 30, model.AppointmentStatusPending)},
			"", true,
		},
		{"no appointments", Candidate{"d1", "2025-06-10", 600, 30}, nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasConflict(tt.candidate, tt.existing, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindConflict_ReturnsConflictingAppointment(t *testing.T) {
	existing := []*model.Appointment{
		appt("a1", "d1", "2025-06-10", "09:00", 30, model.AppointmentStatusPending),
		appt("a2", "d1", "2025-06-10", "10:00", 30, model.AppointmentStatusPending),
	}

	found, err := FindConflict(Candidate{"d1", "2025-06-10", 610, 30}, existing, "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a2", found.ID)
}

func TestFindConflict_MalformedStoredTime(t *testing.T) {
	existing := []*model.Appointment{appt("a1", "d1", "2025-06-10", "10-00", 30, model.AppointmentStatusPending)}

	_, err := FindConflict(Candidate{"d1", "2025-06-10", 600, 30}, existing, "")
	assert.Error(t, err)
}
