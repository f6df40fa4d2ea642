package model

import "time"

type Doctor struct {
	ID              string              `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID          string              `json:"user_id" bson:"user_id" validate:"required,max=64"`
	Qualifications  string              `json:"qualifications,omitempty" bson:"qualifications,omitempty" validate:"omitempty,max=500"`
	ExperienceYears int                 `json:"experience_years" bson:"experience_years" validate:"min=0,max=80"`
	Fees            float64             `json:"fees" bson:"fees" validate:"min=0"`
	AvailableSlots  []AvailableSlot     `json:"available_slots" bson:"available_slots"`
	Schedule        map[string][]string `json:"schedule,omitempty" bson:"schedule,omitempty" validate:"omitempty,weekly_schedule"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
}

// AvailableSlot is a one-off window on a calendar date. Only the date part of
// Date is meaningful.
type AvailableSlot struct {
	ID   string    `json:"id" bson:"id"`
	Date time.Time `json:"date" bson:"date"`
	From string    `json:"from" bson:"from"`
	To   string    `json:"to" bson:"to"`
}

// DoctorAvailability is the read view the scheduling rules work against.
type DoctorAvailability struct {
	AvailableSlots []AvailableSlot     `json:"available_slots" bson:"available_slots"`
	Schedule       map[string][]string `json:"schedule,omitempty" bson:"schedule,omitempty"`
}

type SlotInput struct {
	Date string `json:"date" validate:"required,ymd"`
	From string `json:"from" validate:"required,hhmm"`
	To   string `json:"to" validate:"required,hhmm"`
}

type ScheduleInput struct {
	Schedule map[string][]string `json:"schedule" validate:"required,weekly_schedule"`
}

func (d *Doctor) Availability() DoctorAvailability {
	return DoctorAvailability{
		AvailableSlots: d.AvailableSlots,
		Schedule:       d.Schedule,
	}
}
