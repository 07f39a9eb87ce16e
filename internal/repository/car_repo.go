package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carrental/internal/domain"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

type carModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	Brand           string    `gorm:"column:brand"`
	Model           string    `gorm:"column:model"`
	Year            int       `gorm:"column:year"`
	PricePerDay     float64   `gorm:"column:price_per_day"`
	Available       bool      `gorm:"column:available"`
	Transmission    string    `gorm:"column:transmission"`
	Seats           int       `gorm:"column:seats"`
	Doors           int       `gorm:"column:doors"`
	LuggageCapacity int       `gorm:"column:luggage_capacity"`
	Image           *string   `gorm:"column:image"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (carModel) TableName() string { return "cars" }

func toDomainCar(m carModel) *domain.Car {
	var image string
	if m.Image != nil {
		image = *m.Image
	}

	return &domain.Car{
		ID:              m.ID,
		Brand:           m.Brand,
		Model:           m.Model,
		Year:            m.Year,
		PricePerDay:     m.PricePerDay,
		Available:       m.Available,
		Transmission:    domain.Transmission(m.Transmission),
		Seats:           m.Seats,
		Doors:           m.Doors,
		LuggageCapacity: m.LuggageCapacity,
		Image:           image,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toCarModel(c *domain.Car) carModel {
	var image *string
	if c.Image != "" {
		v := c.Image
		image = &v
	}

	return carModel{
		ID:              c.ID,
		Brand:           c.Brand,
		Model:           c.Model,
		Year:            c.Year,
		PricePerDay:     c.PricePerDay,
		Available:       c.Available,
		Transmission:    string(c.Transmission),
		Seats:           c.Seats,
		Doors:           c.Doors,
		LuggageCapacity: c.LuggageCapacity,
		Image:           image,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CarFilters narrows the public fleet listing.
type CarFilters struct {
	Brand         string
	Transmission  string
	MaxPrice      float64
	OnlyAvailable bool
	Limit         int
	Offset        int
}

func (r *CarRepository) Create(ctx context.Context, c *domain.Car) error {
	m := toCarModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCar(m)
	return nil
}

func (r *CarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	var m carModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCar(m), nil
}

func (r *CarRepository) Update(ctx context.Context, c *domain.Car) error {
	m := toCarModel(c)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCar(m)
	return nil
}

// DeleteIfUnbooked removes the car only while no non-cancelled booking
// references it. The guard and the delete are one statement, so a booking
// admitted concurrently cannot be left pointing at a removed car. Zero
// affected rows means the car is missing or still booked; the caller
// decides which.
func (r *CarRepository) DeleteIfUnbooked(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
DELETE FROM cars
WHERE id = ?
  AND NOT EXISTS (
      SELECT 1 FROM bookings
      WHERE car_id = ?
        AND status <> 'cancelled'
  )`, id, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *CarRepository) List(ctx context.Context, f CarFilters) ([]domain.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&carModel{})

	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if f.Transmission != "" {
		q = q.Where("transmission = ?", f.Transmission)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_day <= ?", f.MaxPrice)
	}
	if f.OnlyAvailable {
		q = q.Where("available = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []carModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Car, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCar(m))
	}
	return out, total, nil
}
