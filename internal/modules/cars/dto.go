package cars

type CreateCarRequest struct {
	Brand           string  `json:"brand" binding:"required"`
	Model           string  `json:"model" binding:"required"`
	Year            int     `json:"year" binding:"required"`
	PricePerDay     float64 `json:"price_per_day" binding:"required"`
	Transmission    string  `json:"transmission" binding:"required"`
	Seats           int     `json:"seats"`
	Doors           int     `json:"doors"`
	LuggageCapacity int     `json:"luggage_capacity"`
	Image           string  `json:"image"`
}

type UpdateCarRequest struct {
	Brand           *string  `json:"brand"`
	Model           *string  `json:"model"`
	Year            *int     `json:"year"`
	PricePerDay     *float64 `json:"price_per_day"`
	Available       *bool    `json:"available"`
	Transmission    *string  `json:"transmission"`
	Seats           *int     `json:"seats"`
	Doors           *int     `json:"doors"`
	LuggageCapacity *int     `json:"luggage_capacity"`
	Image           *string  `json:"image"`
}
