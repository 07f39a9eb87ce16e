package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id" validate:"required"`
	CarID           int64         `json:"car_id" validate:"required"`
	StartDate       time.Time     `json:"start_date" validate:"required"`
	EndDate         time.Time     `json:"end_date" validate:"required"`
	TotalPrice      float64       `json:"total_price" validate:"gte=0"`
	Status          BookingStatus `json:"status"`
	PickupLocation  string        `json:"pickup_location" validate:"required"`
	DropoffLocation string        `json:"dropoff_location" validate:"required"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Car  *Car  `json:"car,omitempty" gorm:"foreignKey:CarID"`
}

// Active reports whether the booking still occupies its date interval.
func (b *Booking) Active() bool {
	return b.Status != BookingCancelled
}
