package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"carrental/internal/domain"
)

// ErrOverlap is returned when a reservation loses the race for a car's
// date interval: some non-cancelled booking already covers part of it.
var ErrOverlap = errors.New("booking interval overlap")

type BusySlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	UserID          int64      `gorm:"column:user_id"`
	CarID           int64      `gorm:"column:car_id"`
	StartDate       time.Time  `gorm:"column:start_date"`
	EndDate         time.Time  `gorm:"column:end_date"`
	TotalPrice      float64    `gorm:"column:total_price"`
	Status          string     `gorm:"column:status"`
	PickupLocation  string     `gorm:"column:pickup_location"`
	DropoffLocation string     `gorm:"column:dropoff_location"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		UserID:          m.UserID,
		CarID:           m.CarID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		PickupLocation:  m.PickupLocation,
		DropoffLocation: m.DropoffLocation,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		UserID:          b.UserID,
		CarID:           b.CarID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

// Create persists a booking only if no non-cancelled booking for the same
// car overlaps [start, end). On sqlite the overlap check and the insert
// are one statement under the single writer, so the loser of a race sees
// ErrOverlap. On postgres READ COMMITTED cannot see a concurrent
// uncommitted insert, so the no_overbooking exclusion constraint that
// database.Migrate installs decides the race; its violation maps to
// ErrOverlap as well.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
INSERT INTO bookings
    (user_id, car_id, start_date, end_date, total_price, status,
     pickup_location, dropoff_location, created_at, updated_at)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
WHERE NOT EXISTS (
    SELECT 1 FROM bookings
    WHERE car_id = ?
      AND status <> 'cancelled'
      AND start_date < ?
      AND end_date > ?
)`,
			m.UserID, m.CarID, m.StartDate, m.EndDate, m.TotalPrice, m.Status,
			m.PickupLocation, m.DropoffLocation, m.CreatedAt, m.UpdatedAt,
			m.CarID, m.EndDate, m.StartDate,
		)
		if res.Error != nil {
			if isOverlapViolation(res.Error) {
				return ErrOverlap
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOverlap
		}

		var row bookingModel
		if err := tx.
			Where("car_id = ? AND user_id = ? AND start_date = ? AND created_at = ?",
				m.CarID, m.UserID, m.StartDate, m.CreatedAt).
			Order("id DESC").
			First(&row).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(row)
		return nil
	})
}

// isOverlapViolation recognizes the postgres errors the no_overbooking
// exclusion constraint (23P01) or a unique index (23505) raise when a
// concurrent insert wins the interval first.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

// Cancel marks a booking cancelled. A booking that is absent or already
// cancelled matches zero rows, which the caller treats as not found.
func (r *BookingRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status <> ?", id, string(domain.BookingCancelled)).
		Updates(map[string]any{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": now,
			"updated_at":   now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// HasActiveForCar reports whether any non-cancelled booking references the car.
func (r *BookingRepository) HasActiveForCar(ctx context.Context, carID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("car_id = ? AND status <> ?", carID, string(domain.BookingCancelled)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// BusySlotsForCar returns the reserved intervals of a car that intersect
// the [from, to) window, ordered by start date.
func (r *BookingRepository) BusySlotsForCar(ctx context.Context, carID int64, from, to time.Time) ([]BusySlot, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("car_id = ? AND status <> ? AND start_date < ? AND end_date > ?",
			carID, string(domain.BookingCancelled), to, from).
		Order("start_date").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]BusySlot, 0, len(rows))
	for _, m := range rows {
		out = append(out, BusySlot{Start: m.StartDate, End: m.EndDate})
	}
	return out, nil
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
