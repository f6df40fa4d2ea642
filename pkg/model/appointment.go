package model

import "time"

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

const (
	PaymentModeCash     = "cash"
	PaymentModeStripe   = "stripe"
	PaymentModeRazorpay = "razorpay"
	PaymentModeOnline   = "online"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const DefaultDurationMinutes = 30

type Appointment struct {
	ID                 string              `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PatientID          string              `json:"patient_id" bson:"patient_id" validate:"required,max=64"`
	DoctorID           string              `json:"doctor_id" bson:"doctor_id" validate:"required,max=64"`
	Date               string              `json:"date" bson:"date" validate:"required,ymd"`
	Time               string              `json:"time" bson:"time" validate:"required,hhmm"`
	DurationMinutes    int                 `json:"duration_minutes" bson:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	TokenNumber        int                 `json:"token_number" bson:"token_number" validate:"omitempty,min=1"`
	TokenDate          string              `json:"token_date,omitempty" bson:"token_date"` // date the token was issued for; rescheduling does not move it
	Status             string              `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	RescheduleRequests []RescheduleRequest `json:"reschedule_requests" bson:"reschedule_requests"`
	Reason             string              `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=500"`
	PaymentMode        string              `json:"payment_mode" bson:"payment_mode" validate:"omitempty,oneof=cash stripe razorpay online"`
	PaymentStatus      string              `json:"payment_status" bson:"payment_status" validate:"omitempty,oneof=pending paid failed"`
	Amount             float64             `json:"amount" bson:"amount" validate:"min=0"`
	Version            int64               `json:"version" bson:"version"`
	CreatedAt          time.Time           `json:"created_at" bson:"created_at"`
}

// RescheduleRequest lives embedded in its parent appointment and is only
// mutated through the parent.
type RescheduleRequest struct {
	ID          string     `json:"id" bson:"id"`
	RequestedBy string     `json:"requested_by" bson:"requested_by"`
	Date        string     `json:"date" bson:"date"`
	Time        string     `json:"time" bson:"time"`
	Status      string     `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}

// AppointmentUpdate is the administrative overwrite. It carries no
// scheduling fields.
type AppointmentUpdate struct {
	Status        string   `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentMode   string   `json:"payment_mode,omitempty" validate:"omitempty,oneof=cash stripe razorpay online"`
	PaymentStatus string   `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid failed"`
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,min=0"`
}

type RescheduleInput struct {
	Date string `json:"date" validate:"required,ymd"`
	Time string `json:"time" validate:"required,hhmm"`
}

type StatusChange struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type AppointmentFilter struct {
	PatientID string
	DoctorID  string
}

func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}
