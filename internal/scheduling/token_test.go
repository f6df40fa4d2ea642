package scheduling

import (
	"testing"

	"medizy/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestNextToken(t *testing.T) {
	tok := func(doctor, date string, n int, status string) *model.Appointment {
		return &model.Appointment{DoctorID: doctor, Date: date, TokenNumber: n, Status: status}
	}

	tests := []struct {
		name     string
		existing []*model.Appointment
		want     int
	}{
		{"first of the day", nil, 1},
		{"after one", []*model.Appointment{tok("d1", "2025-06-10", 1, model.AppointmentStatusPending)}, 2},
		{
			"cancelled keeps its token",
			[]*model.Appointment{
				tok("d1", "2025-06-10", 1, model.AppointmentStatusPending),
				tok("d1", "2025-06-10", 2, model.AppointmentStatusCancelled),
			},
			3,
		},
		{
			"gaps are not refilled",
			[]*model.Appointment{
				tok("d1", "2025-06-10", 1, model.AppointmentStatusPending),
				tok("d1", "2025-06-10", 5, model.AppointmentStatusCompleted),
			},
			6,
		},
		{
			"other doctors and dates are ignored",
			[]*model.Appointment{
				tok("d2", "2025-06-10", 9, model.AppointmentStatusPending),
				tok("d1", "2025-06-11", 7, model.AppointmentStatusPending),
				tok("d1", "2025-06-10", 2, model.AppointmentStatusPending),
			},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextToken("d1", "2025-06-10", tt.existing))
		})
	}
}

func TestNextToken_Monotonic(t *testing.T) {
	var issued []*model.Appointment
	for i := 1; i <= 20; i++ {
		n := NextToken("d1", "2025-06-10", issued)
		assert.Equal(t, i, n)
		issued = append(issued, &model.Appointment{DoctorID: "d1", Date: "2025-06-10", TokenNumber: n})
	}
}

func TestNextToken_CountsIssuedAndMovedTokens(t *testing.T) {
	// Token 4 was issued for the 10th and the appointment later moved to the 12th.
	moved := &model.Appointment{DoctorID: "d1", Date: "2025-06-12", TokenDate: "2025-06-10", TokenNumber: 4}
	issued := []*model.Appointment{
		{DoctorID: "d1", Date: "2025-06-10", TokenNumber: 1},
		moved,
	}

	assert.Equal(t, 5, NextToken("d1", "2025-06-10", issued))
	assert.Equal(t, 5, NextToken("d1", "2025-06-12", issued))
	assert.Equal(t, 1, NextToken("d1", "2025-06-11", issued))
	assert.Equal(t, "2025-06-10", IssuedOn(moved))
	assert.True(t, HoldsTokenOn(moved, "2025-06-10"))
	assert.True(t, HoldsTokenOn(moved, "2025-06-12"))
}

func TestNextToken_MovedTokenBlocksTargetDay(t *testing.T) {
	moved := &model.Appointment{DoctorID: "d1", Date: "2025-06-12", TokenDate: "2025-06-10", TokenNumber: 1}
	next := NextToken("d1", "2025-06-12", []*model.Appointment{moved})
	assert.Equal(t, 2, next)

	booked := &model.Appointment{DoctorID: "d1", Date: "2025-06-12", TokenNumber: next}
	assert.Equal(t, 3, NextToken("d1", "2025-06-12", []*model.Appointment{moved, booked}))
}
