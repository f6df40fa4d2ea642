package scheduling

import "medizy/pkg/model"

// NextToken returns one past the highest token held on date by doctorID's
// appointments, counting both those scheduled on date and those whose token
// was issued for it. Cancelled appointments keep their token, and an
// appointment moved to another day carries its token with it.
func NextToken(doctorID, date string, existing []*model.Appointment) int {
	highest := 0
	for _, appt := range existing {
		if appt == nil || appt.DoctorID != doctorID || !HoldsTokenOn(appt, date) {
			continue
		}
		highest = max(highest, appt.TokenNumber)
	}
	return highest + 1
}

// IssuedOn is the date whose token sequence appt belongs to.
func IssuedOn(appt *model.Appointment) string {
	if appt.TokenDate != "" {
		return appt.TokenDate
	}
	return appt.Date
}

// HoldsTokenOn reports whether appt's token occupies date's sequence, either
// because it is scheduled there or because the token was issued for it.
func HoldsTokenOn(appt *model.Appointment, date string) bool {
	return appt.Date == date || IssuedOn(appt) == date
}
