package booking

import (
	"context"

	"carrental/internal/domain"
)

// BookingRepository defines the storage operations the engine needs.
// Create must be atomic with respect to the overlap check: of two
// concurrent inserts for intersecting intervals on the same car, exactly
// one succeeds and the other returns repository.ErrOverlap.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

// CarReader resolves cars for admission checks.
type CarReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}
