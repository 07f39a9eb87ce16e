package cars

import "errors"

var (
	ErrCarNotFound          = errors.New("car not found")
	ErrValidation           = errors.New("car validation failed")
	ErrInvalidTransmission  = errors.New("invalid transmission")
	ErrCarHasActiveBookings = errors.New("car has active bookings")
)

// ValidationError carries the field -> failed-tag map from validating a
// car so handlers can report which attribute was rejected. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() }

func (e *ValidationError) Unwrap() error { return ErrValidation }
