package errors

import "errors"

var (
	ErrNotFound = errors.New("doctor not found")

	ErrInvalidID = errors.New("invalid doctor ID format")

	ErrDuplicateProfile = errors.New("doctor profile already exists for user")

	ErrSlotNotFound = errors.New("available slot not found")

	ErrDuplicateSlot = errors.New("available slot already exists")
)
