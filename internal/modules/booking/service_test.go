package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
		b.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCarReader struct {
	mock.Mock
}

func (m *MockCarReader) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func availableCar(id int64, pricePerDay float64) *domain.Car {
	return &domain.Car{
		ID:           id,
		Brand:        "Toyota",
		Model:        "Corolla",
		Year:         2022,
		PricePerDay:  pricePerDay,
		Available:    true,
		Transmission: domain.TransmissionAutomatic,
		Seats:        5,
		Doors:        4,
	}
}

func TestCreateBooking_Success_TwoFullDays(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockCars.On("GetByID", mock.Anything, int64(10)).Return(availableCar(10, 500.0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

	req := CreateBookingRequest{
		CarID:           10,
		UserID:          7,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "Airport",
		DropoffLocation: "Downtown",
	}

	b, err := service.CreateBooking(context.Background(), req)

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 1000.0, b.TotalPrice)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(7), b.UserID)
}

func TestCreateBooking_SameDayMinimumOneDay(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockCars.On("GetByID", mock.Anything, int64(10)).Return(availableCar(10, 500.0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CarID:           10,
		UserID:          7,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "Airport",
		DropoffLocation: "Airport",
	})

	assert.NoError(t, err)
	assert.Equal(t, 500.0, b.TotalPrice)
}

func TestCreateBooking_PartialDayRoundsUp(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockCars.On("GetByID", mock.Anything, int64(10)).Return(availableCar(10, 300.0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockCars)

	// 2 days and 4 hours -> 3 billable days
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 3, 13, 0, 0, 0, time.UTC)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CarID:           10,
		UserID:          7,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "Station",
		DropoffLocation: "Station",
	})

	assert.NoError(t, err)
	assert.Equal(t, 900.0, b.TotalPrice)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)
	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

	for _, end := range []time.Time{
		start.Add(-48 * time.Hour),
		start, // equal dates are invalid too
	} {
		_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
			CarID:           10,
			UserID:          7,
			StartDate:       start,
			EndDate:         end,
			PickupLocation:  "Airport",
			DropoffLocation: "Airport",
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	}

	mockCars.AssertNotCalled(t, "GetByID")
	mockBookings.AssertNotCalled(t, "Create")
}

func TestCreateBooking_MissingLocation(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)
	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CarID:           10,
		UserID:          7,
		StartDate:       start,
		EndDate:         start.Add(24 * time.Hour),
		PickupLocation:  "   ",
		DropoffLocation: "Downtown",
	})

	assert.ErrorIs(t, err, ErrMissingLocation)
	mockBookings.AssertNotCalled(t, "Create")
}

func TestCreateBooking_CarNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockCars.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CarID:           404,
		UserID:          7,
		StartDate:       start,
		EndDate:         start.Add(24 * time.Hour),
		PickupLocation:  "Airport",
		DropoffLocation: "Downtown",
	})

	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCreateBooking_CarWithdrawnFromService(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	car := availableCar(10, 500.0)
	car.Available = false
	mockCars.On("GetByID", mock.Anything, int64(10)).Return(car, nil)

	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CarID:           10,
		UserID:          7,
		StartDate:       start,
		EndDate:         start.Add(24 * time.Hour),
		PickupLocation:  "Airport",
		DropoffLocation: "Downtown",
	})

	assert.ErrorIs(t, err, ErrCarUnavailable)
	mockBookings.AssertNotCalled(t, "Create")
}

func TestCreateBooking_OverlapLosesRace(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockCars.On("GetByID", mock.Anything, int64(10)).Return(availableCar(10, 500.0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

	service := NewService(mockBookings, mockCars)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CarID:           10,
		UserID:          7,
		StartDate:       start,
		EndDate:         start.Add(48 * time.Hour),
		PickupLocation:  "Airport",
		DropoffLocation: "Downtown",
	})

	assert.ErrorIs(t, err, ErrCarUnavailable)
}

func TestCancelBooking_OwnerSucceeds(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		UserID: 7,
		CarID:  10,
		Status: domain.BookingPending,
	}, nil)
	mockBookings.On("Cancel", mock.Anything, int64(123)).Return(true, nil)

	service := NewService(mockBookings, mockCars)

	err := service.CancelBooking(context.Background(), 123, 7, "user")

	assert.NoError(t, err)
	mockBookings.AssertExpectations(t)
}

func TestCancelBooking_AdminSucceeds(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		UserID: 7,
		Status: domain.BookingPending,
	}, nil)
	mockBookings.On("Cancel", mock.Anything, int64(123)).Return(true, nil)

	service := NewService(mockBookings, mockCars)

	err := service.CancelBooking(context.Background(), 123, 1, "admin")

	assert.NoError(t, err)
}

func TestCancelBooking_StrangerForbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		UserID: 7,
		Status: domain.BookingPending,
	}, nil)

	service := NewService(mockBookings, mockCars)

	err := service.CancelBooking(context.Background(), 123, 8, "user")

	assert.ErrorIs(t, err, ErrNotAuthorized)
	mockBookings.AssertNotCalled(t, "Cancel")
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		UserID: 7,
		Status: domain.BookingCancelled,
	}, nil)

	service := NewService(mockBookings, mockCars)

	err := service.CancelBooking(context.Background(), 123, 7, "user")

	assert.ErrorIs(t, err, ErrBookingNotFound)
	mockBookings.AssertNotCalled(t, "Cancel")
}

func TestCancelBooking_Missing(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockCars)

	err := service.CancelBooking(context.Background(), 404, 7, "user")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListAllBookings_RequiresAdmin(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)
	service := NewService(mockBookings, mockCars)

	_, err := service.ListAllBookings(context.Background(), "user")

	assert.ErrorIs(t, err, ErrNotAuthorized)
	mockBookings.AssertNotCalled(t, "ListAll")
}

func TestListAllBookings_AdminSees(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("ListAll", mock.Anything).Return([]domain.Booking{
		{ID: 2, UserID: 7}, {ID: 1, UserID: 8},
	}, nil)

	service := NewService(mockBookings, mockCars)

	bookings, err := service.ListAllBookings(context.Background(), "admin")

	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestGetBooking_OwnerOnly(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCars := new(MockCarReader)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		UserID: 7,
		Status: domain.BookingPending,
	}, nil)

	service := NewService(mockBookings, mockCars)

	_, err := service.GetBooking(context.Background(), 123, 9, "user")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	b, err := service.GetBooking(context.Background(), 123, 7, "user")
	assert.NoError(t, err)
	assert.Equal(t, int64(123), b.ID)
}

func TestRentalDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, rentalDays(start, start.Add(4*time.Hour)))
	assert.Equal(t, 1, rentalDays(start, start.Add(24*time.Hour)))
	assert.Equal(t, 2, rentalDays(start, start.Add(25*time.Hour)))
	assert.Equal(t, 2, rentalDays(start, start.Add(48*time.Hour)))
	assert.Equal(t, 7, rentalDays(start, start.Add(7*24*time.Hour)))
}
