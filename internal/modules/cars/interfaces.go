package cars

import (
	"context"
	"time"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

// CarRepository defines the storage operations for the fleet.
type CarRepository interface {
	Create(ctx context.Context, c *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, c *domain.Car) error
	DeleteIfUnbooked(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f repository.CarFilters) ([]domain.Car, int64, error)
}

// BookingReader exposes the reservation schedule of a car.
type BookingReader interface {
	HasActiveForCar(ctx context.Context, carID int64) (bool, error)
	BusySlotsForCar(ctx context.Context, carID int64, from, to time.Time) ([]repository.BusySlot, error)
}
