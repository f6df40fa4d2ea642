package scheduling

import "medizy/pkg/model"

// Candidate is the interval being booked or moved.
type Candidate struct {
	DoctorID string
	Date     string
	Start    int
	Duration int
}

// FindConflict returns the first appointment overlapping c among the doctor's
// other non-cancelled appointments on c.Date, or nil.
func FindConflict(c Candidate, existing []*model.Appointment, excludeID string) (*model.Appointment, error) {
	for _, appt := range existing {
		if appt == nil ||
			appt.DoctorID != c.DoctorID ||
			appt.Date != c.Date ||
			appt.Status == model.AppointmentStatusCancelled ||
			(excludeID != "" && appt.ID == excludeID) {
			continue
		}

		hhmm := appt.Time
		if hhmm == "" {
			hhmm = dayStart
		}
		start, err := ToMinutes(hhmm)
		if err != nil {
			return nil, err
		}

		if Overlaps(c.Start, c.Duration, start, appt.DurationMinutes) {
			return appt, nil
		}
	}
	return nil, nil
}

func HasConflict(c Candidate, existing []*model.Appointment, excludeID string) (bool, error) {
	appt, err := FindConflict(c, existing, excludeID)
	return appt != nil, err
}
