package booking

import "errors"

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrMissingLocation  = errors.New("pickup and dropoff locations are required")
	ErrCarNotFound      = errors.New("car not found")
	ErrCarUnavailable   = errors.New("car is not available for the requested dates")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotAuthorized    = errors.New("not authorized")
)
