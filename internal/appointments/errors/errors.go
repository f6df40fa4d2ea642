package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	ErrDuplicateToken = errors.New("token number already issued for doctor and date")

	ErrVersionConflict = errors.New("appointment was modified concurrently")

	ErrLockHeld = errors.New("slot lock is held by another request")
)
