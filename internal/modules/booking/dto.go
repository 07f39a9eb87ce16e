package booking

import "time"

type CreateBookingRequest struct {
	CarID           int64     `json:"car_id" binding:"required"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`

	// set from the authenticated caller, never from the request body
	UserID int64 `json:"-"`
}
