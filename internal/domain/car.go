package domain

import (
	"errors"
	"strings"
	"time"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

var ErrUnknownTransmission = errors.New("unknown transmission")

func ParseTransmission(s string) (Transmission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual":
		return TransmissionManual, nil
	case "automatic":
		return TransmissionAutomatic, nil
	default:
		return "", ErrUnknownTransmission
	}
}

// Car is a rentable vehicle in the fleet. Available is an administrative
// in-service flag: a car pulled for maintenance is not bookable regardless
// of its reservation schedule. Booking conflicts are decided by interval
// overlap against the bookings table, never by this flag.
type Car struct {
	ID              int64        `json:"id"`
	Brand           string       `json:"brand" validate:"required"`
	Model           string       `json:"model" validate:"required"`
	Year            int          `json:"year" validate:"required,gte=1900,lte=2100"`
	PricePerDay     float64      `json:"price_per_day" validate:"required,gt=0"`
	Available       bool         `json:"available"`
	Transmission    Transmission `json:"transmission" validate:"required"`
	Seats           int          `json:"seats"`
	Doors           int          `json:"doors"`
	LuggageCapacity int          `json:"luggage_capacity"`
	Image           string       `json:"image,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
