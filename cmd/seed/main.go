package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (bookings first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM cars")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Fleet Admin",
		Email:        "admin@carrental.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin:", err)
	}

	userHash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	customers := []domain.User{
		{Name: "Alice Renter", Email: "alice@example.com", PasswordHash: string(userHash), Role: domain.RoleUser},
		{Name: "Bob Driver", Email: "bob@example.com", PasswordHash: string(userHash), Role: domain.RoleUser},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Fatal("failed to create user:", err)
		}
	}

	// ================== FLEET ==================
	log.Println("Creating fleet...")

	fleet := []domain.Car{
		{Brand: "Toyota", Model: "Corolla", Year: 2022, PricePerDay: 450, Available: true, Transmission: domain.TransmissionAutomatic, Seats: 5, Doors: 4, LuggageCapacity: 3},
		{Brand: "Volkswagen", Model: "Golf", Year: 2021, PricePerDay: 400, Available: true, Transmission: domain.TransmissionManual, Seats: 5, Doors: 4, LuggageCapacity: 2},
		{Brand: "BMW", Model: "X5", Year: 2023, PricePerDay: 1200, Available: true, Transmission: domain.TransmissionAutomatic, Seats: 5, Doors: 4, LuggageCapacity: 5},
		{Brand: "Kia", Model: "Picanto", Year: 2020, PricePerDay: 250, Available: true, Transmission: domain.TransmissionManual, Seats: 4, Doors: 4, LuggageCapacity: 1},
		{Brand: "Mercedes-Benz", Model: "Vito", Year: 2022, PricePerDay: 900, Available: false, Transmission: domain.TransmissionAutomatic, Seats: 8, Doors: 4, LuggageCapacity: 6},
	}
	for i := range fleet {
		fleet[i].Image = fmt.Sprintf("%s.jpg", uuid.NewString())
		if err := db.Create(&fleet[i]).Error; err != nil {
			log.Fatal("failed to create car:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating sample bookings...")

	start := time.Now().UTC().Truncate(24 * time.Hour).Add(7 * 24 * time.Hour)
	bookings := []domain.Booking{
		{
			UserID:          customers[0].ID,
			CarID:           fleet[0].ID,
			StartDate:       start,
			EndDate:         start.Add(3 * 24 * time.Hour),
			TotalPrice:      3 * fleet[0].PricePerDay,
			Status:          domain.BookingPending,
			PickupLocation:  "Airport",
			DropoffLocation: "Downtown",
		},
		{
			UserID:          customers[1].ID,
			CarID:           fleet[2].ID,
			StartDate:       start.Add(24 * time.Hour),
			EndDate:         start.Add(2 * 24 * time.Hour),
			TotalPrice:      fleet[2].PricePerDay,
			Status:          domain.BookingPending,
			PickupLocation:  "Central Station",
			DropoffLocation: "Central Station",
		},
	}
	for i := range bookings {
		if err := db.Create(&bookings[i]).Error; err != nil {
			log.Fatal("failed to create booking:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("  admin:  admin@carrental.local / admin123")
	log.Println("  users:  alice@example.com, bob@example.com / user123")
}
