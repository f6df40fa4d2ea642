package errors

import "errors"

var (
	ErrNotFound = errors.New("notification not found")

	ErrInvalidID = errors.New("invalid notification ID format")

	// ErrDuplicateEvent means the event was already stored by an earlier delivery.
	ErrDuplicateEvent = errors.New("notification event already stored")
)
