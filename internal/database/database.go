package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver

	"carrental/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

const overlapConstraintName = "no_overbooking"

// Migrate brings the schema up to date for all rental entities. On
// postgres it also installs the exclusion constraint that rejects two
// non-cancelled bookings with intersecting intervals for one car.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Car{},
		&domain.Booking{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return ensureOverlapConstraint(db)
	}
	return nil
}

// ensureOverlapConstraint guards booking inserts at the database level.
// Under READ COMMITTED two concurrent transactions cannot see each
// other's uncommitted rows, so an insert-time NOT EXISTS check alone
// does not stop a double booking on postgres; the gist constraint makes
// the loser fail with an exclusion violation instead.
func ensureOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	var cnt int64
	err := db.Raw("SELECT COUNT(1) FROM pg_constraint WHERE conname = ?", overlapConstraintName).
		Scan(&cnt).Error
	if err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	return db.Exec(`
ALTER TABLE bookings
ADD CONSTRAINT ` + overlapConstraintName + `
EXCLUDE USING gist (car_id WITH =, tstzrange(start_date, end_date, '[)') WITH &&)
WHERE (status <> 'cancelled')`).Error
}

