package cars

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"carrental/internal/domain"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"
)

// defaults match the fleet's typical sedan
const (
	defaultSeats    = 5
	defaultDoors    = 4
	defaultLuggage  = 3
	defaultCarImage = "default-car.jpg"
)

type Service struct {
	cars     CarRepository
	bookings BookingReader
}

func NewService(cars CarRepository, bookings BookingReader) *Service {
	return &Service{
		cars:     cars,
		bookings: bookings,
	}
}

func (s *Service) ListCars(ctx context.Context, f repository.CarFilters) ([]domain.Car, int64, error) {
	return s.cars.List(ctx, f)
}

func (s *Service) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *Service) CreateCar(ctx context.Context, req CreateCarRequest) (*domain.Car, error) {
	transmission, err := domain.ParseTransmission(req.Transmission)
	if err != nil {
		return nil, ErrInvalidTransmission
	}

	car := &domain.Car{
		Brand:           req.Brand,
		Model:           req.Model,
		Year:            req.Year,
		PricePerDay:     req.PricePerDay,
		Available:       true,
		Transmission:    transmission,
		Seats:           req.Seats,
		Doors:           req.Doors,
		LuggageCapacity: req.LuggageCapacity,
		Image:           req.Image,
	}

	if car.Seats == 0 {
		car.Seats = defaultSeats
	}
	if car.Doors == 0 {
		car.Doors = defaultDoors
	}
	if car.LuggageCapacity == 0 {
		car.LuggageCapacity = defaultLuggage
	}
	if car.Image == "" {
		car.Image = defaultCarImage
	}

	if fieldErrs := validator.Validate(car); fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *Service) UpdateCar(ctx context.Context, id int64, req UpdateCarRequest) (*domain.Car, error) {
	car, err := s.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Brand != nil {
		car.Brand = *req.Brand
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.PricePerDay != nil {
		car.PricePerDay = *req.PricePerDay
	}
	if req.Available != nil {
		car.Available = *req.Available
	}
	if req.Transmission != nil {
		transmission, err := domain.ParseTransmission(*req.Transmission)
		if err != nil {
			return nil, ErrInvalidTransmission
		}
		car.Transmission = transmission
	}
	if req.Seats != nil && *req.Seats > 0 {
		car.Seats = *req.Seats
	}
	if req.Doors != nil && *req.Doors > 0 {
		car.Doors = *req.Doors
	}
	if req.LuggageCapacity != nil && *req.LuggageCapacity >= 0 {
		car.LuggageCapacity = *req.LuggageCapacity
	}
	if req.Image != nil {
		car.Image = *req.Image
	}

	if fieldErrs := validator.Validate(car); fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// DeleteCar removes a car from the fleet. Cars with non-cancelled bookings
// are protected so the ledger never references a missing vehicle; the guard
// lives in the delete statement itself, so a booking admitted while the
// delete is in flight still blocks it.
func (s *Service) DeleteCar(ctx context.Context, id int64) error {
	deleted, err := s.cars.DeleteIfUnbooked(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	// Zero rows: either the car is gone or a booking protects it.
	active, err := s.bookings.HasActiveForCar(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return ErrCarHasActiveBookings
	}
	return ErrCarNotFound
}

// GetAvailability returns the reserved intervals of a car inside the
// requested window so a client can render a booking calendar.
func (s *Service) GetAvailability(ctx context.Context, carID int64, from, to time.Time) ([]repository.BusySlot, error) {
	if _, err := s.GetCar(ctx, carID); err != nil {
		return nil, err
	}

	if from.IsZero() {
		from = time.Now().UTC()
	}
	if to.IsZero() || !to.After(from) {
		to = from.Add(30 * 24 * time.Hour)
	}

	return s.bookings.BusySlotsForCar(ctx, carID, from, to)
}
