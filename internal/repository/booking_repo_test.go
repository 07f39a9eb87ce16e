package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"carrental/internal/database"
	"carrental/internal/domain"
)

// newTestRepo opens a migrated sqlite database in a per-test temp dir so
// repository behaviour runs against real SQL instead of mocks.
func newTestRepo(t *testing.T) *BookingRepository {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "rental.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return NewBookingRepository(db)
}

func rental(userID, carID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:          userID,
		CarID:           carID,
		StartDate:       start,
		EndDate:         end,
		TotalPrice:      1000,
		Status:          domain.BookingPending,
		PickupLocation:  "Airport",
		DropoffLocation: "Downtown",
	}
}

func TestBookingCreate_RejectsOverlap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	first := rental(1, 7, start, end)
	assert.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	// second request intersects the middle of the held interval
	second := rental(2, 7, start.Add(24*time.Hour), end.Add(24*time.Hour))
	assert.ErrorIs(t, repo.Create(ctx, second), ErrOverlap)

	// the same dates on another car are free
	otherCar := rental(2, 8, start, end)
	assert.NoError(t, repo.Create(ctx, otherCar))
}

func TestBookingCreate_AcceptsAdjacentInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	assert.NoError(t, repo.Create(ctx, rental(1, 7, start, end)))

	// [start, end) is half-open: a rental starting exactly at end fits
	next := rental(2, 7, end, end.Add(48*time.Hour))
	assert.NoError(t, repo.Create(ctx, next))
}

func TestBookingCancel_FreesInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	held := rental(1, 7, start, end)
	assert.NoError(t, repo.Create(ctx, held))

	blocked := rental(2, 7, start, end)
	assert.ErrorIs(t, repo.Create(ctx, blocked), ErrOverlap)

	ok, err := repo.Cancel(ctx, held.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	// cancelled bookings no longer hold the interval
	retry := rental(2, 7, start, end)
	assert.NoError(t, repo.Create(ctx, retry))
}

func TestBookingCancel_SecondCancelMatchesNothing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	b := rental(1, 7, start, start.Add(24*time.Hour))
	assert.NoError(t, repo.Create(ctx, b))

	ok, err := repo.Cancel(ctx, b.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Cancel(ctx, b.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBusySlotsForCar_WindowFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	jan10 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, repo.Create(ctx, rental(1, 7, jan10, jan10.Add(48*time.Hour))))
	assert.NoError(t, repo.Create(ctx, rental(2, 7, jan10.Add(240*time.Hour), jan10.Add(288*time.Hour))))

	slots, err := repo.BusySlotsForCar(ctx, 7, jan10, jan10.Add(120*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, jan10.Unix(), slots[0].Start.Unix())
}

func TestIsOverlapViolation(t *testing.T) {
	assert.True(t, isOverlapViolation(&pgconn.PgError{Code: "23P01"}))
	assert.True(t, isOverlapViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isOverlapViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isOverlapViolation(context.DeadlineExceeded))
}
