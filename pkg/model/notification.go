package model

import "time"

type Notification struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty"`
	EventID   string         `json:"-" bson:"event_id,omitempty"`
	UserID    string         `json:"user_id" bson:"user_id"`
	Title     string         `json:"title" bson:"title"`
	Body      string         `json:"body" bson:"body"`
	Data      map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Read      bool           `json:"read" bson:"read"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

const (
	EmailTemplateAppointmentConfirmation = "appointment_confirmation"
	EmailTemplateRescheduleNotification  = "reschedule_notification"
)

// NotificationEvent is the payload published for in-app notifications.
type NotificationEvent struct {
	EventID    string         `json:"event_id"`
	UserID     string         `json:"user_id"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EmailEvent is consumed by the external mail sender.
type EmailEvent struct {
	EventID    string            `json:"event_id"`
	UserID     string            `json:"user_id"`
	Subject    string            `json:"subject"`
	Template   string            `json:"template"`
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
