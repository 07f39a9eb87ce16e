package booking

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

type Service struct {
	bookings BookingRepository
	cars     CarReader
}

func NewService(bookings BookingRepository, cars CarReader) *Service {
	return &Service{
		bookings: bookings,
		cars:     cars,
	}
}

// CreateBooking admits a reservation request: validates the interval and
// locations, resolves the car, prices the rental and persists the booking.
// Conflicts with existing non-cancelled bookings are decided atomically in
// the repository, so a racing request for the same car cannot double-book.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if strings.TrimSpace(req.PickupLocation) == "" || strings.TrimSpace(req.DropoffLocation) == "" {
		return nil, ErrMissingLocation
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	// the in-service flag is administrative; a withdrawn car is never bookable
	if !car.Available {
		return nil, ErrCarUnavailable
	}

	days := rentalDays(req.StartDate, req.EndDate)
	total := float64(days) * car.PricePerDay

	b := &domain.Booking{
		UserID:          req.UserID,
		CarID:           req.CarID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TotalPrice:      total,
		Status:          domain.BookingPending,
		PickupLocation:  strings.TrimSpace(req.PickupLocation),
		DropoffLocation: strings.TrimSpace(req.DropoffLocation),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrCarUnavailable
		}
		return nil, err
	}

	return b, nil
}

// CancelBooking cancels a booking on behalf of its owner or an admin.
// An already-cancelled booking is treated as absent, so repeating the
// call fails with ErrBookingNotFound instead of succeeding silently.
func (s *Service) CancelBooking(ctx context.Context, bookingID, callerID int64, callerRole string) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if !b.Active() {
		return ErrBookingNotFound
	}

	if !canManage(b, callerID, callerRole) {
		return ErrNotAuthorized
	}

	ok, err := s.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return err
	}
	if !ok {
		// lost a race with another cancel
		return ErrBookingNotFound
	}
	return nil
}

// GetBooking returns a single booking, visible to its owner or an admin.
func (s *Service) GetBooking(ctx context.Context, bookingID, callerID int64, callerRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !canManage(b, callerID, callerRole) {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListAllBookings(ctx context.Context, callerRole string) ([]domain.Booking, error) {
	if callerRole != string(domain.RoleAdmin) {
		return nil, ErrNotAuthorized
	}
	return s.bookings.ListAll(ctx)
}

// canManage is the single ownership/role predicate for bookings.
func canManage(b *domain.Booking, callerID int64, callerRole string) bool {
	if callerRole == string(domain.RoleAdmin) {
		return true
	}
	return b.UserID == callerID
}

// rentalDays prices partial days as whole ones, with a one-day minimum.
func rentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
