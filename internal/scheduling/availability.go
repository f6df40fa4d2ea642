package scheduling

import "medizy/pkg/model"

const (
	dayStart = "00:00"
	dayEnd   = "23:59"
)

// IsWithinAvailability reports whether hhmm on date falls inside one of the
// doctor's one-off slots, bounds inclusive. A doctor without one-off slots is
// unconstrained; the recurring weekly schedule is not enforced here.
func IsWithinAvailability(av model.DoctorAvailability, date, hhmm string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, err
	}
	if hhmm == "" {
		hhmm = dayStart
	}
	requested, err := ToMinutes(hhmm)
	if err != nil {
		return false, err
	}

	if len(av.AvailableSlots) == 0 {
		return true, nil
	}

	for _, slot := range av.AvailableSlots {
		if slot.Date.IsZero() || CalendarDate(slot.Date) != date {
			continue
		}
		from, to, ok := slotBounds(slot)
		if !ok {
			continue
		}
		if requested >= from && requested <= to {
			return true, nil
		}
	}
	return false, nil
}

func slotBounds(slot model.AvailableSlot) (int, int, bool) {
	fromStr, toStr := slot.From, slot.To
	if fromStr == "" {
		fromStr = dayStart
	}
	if toStr == "" {
		toStr = dayEnd
	}
	from, err := ToMinutes(fromStr)
	if err != nil {
		return 0, 0, false
	}
	to, err := ToMinutes(toStr)
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}

// RecurringSlots returns the weekly schedule ranges for date's weekday.
func RecurringSlots(av model.DoctorAvailability, date string) ([]string, error) {
	weekday, err := WeekdayName(date)
	if err != nil {
		return nil, err
	}
	return av.Schedule[weekday], nil
}

// ParseRange splits an "HH:MM-HH:MM" schedule entry into minute bounds.
func ParseRange(r string) (int, int, error) {
	for i := 0; i < len(r); i++ {
		if r[i] != '-' {
			continue
		}
		from, err := ToMinutes(r[:i])
		if err != nil {
			return 0, 0, &FormatError{Field: "schedule", Value: r, Expected: "HH:MM-HH:MM"}
		}
		to, err := ToMinutes(r[i+1:])
		if err != nil {
			return 0, 0, &FormatError{Field: "schedule", Value: r, Expected: "HH:MM-HH:MM"}
		}
		return from, to, nil
	}
	return 0, 0, &FormatError{Field: "schedule", Value: r, Expected: "HH:MM-HH:MM"}
}
