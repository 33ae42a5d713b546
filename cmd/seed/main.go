package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"hotelreserve/internal/database"
	"hotelreserve/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const availabilityDays = 90

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotelreserve.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Hotel{},
		&domain.Room{},
		&domain.RoomAvailability{},
		&domain.Reservation{},
		&domain.Payment{},
		&domain.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM room_availabilities")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	createUser(db, "admin@hotelreserve.io", "admin123", "Platform Admin", domain.RoleAdmin)
	log.Println("Admin created: admin@hotelreserve.io / admin123")

	manager := createUser(db, "manager@grandpalace.com", "manager123", "Hotel Manager", domain.RoleHotelManager)
	log.Println("Manager created: manager@grandpalace.com / manager123")

	createUser(db, "guest@example.com", "guest123", "Sample Guest", domain.RoleRegistered)
	log.Println("Guest created: guest@example.com / guest123")

	log.Println("Creating hotels...")

	grandPalace := domain.Hotel{
		Name:        "Grand Palace Hotel",
		Description: "Five-star hotel in the heart of the old town.",
		Address:     "1 Palace Square",
		City:        "Vienna",
		Country:     "Austria",
		Stars:       5,
		Email:       "stay@grandpalace.com",
		Phone:       "+43 1 234 5678",
		ManagerID:   manager.ID,
		Amenities:   []string{"wifi", "spa", "pool", "restaurant", "parking"},
		IsActive:    true,
	}
	db.Create(&grandPalace)

	harborView := domain.Hotel{
		Name:        "Harbor View Inn",
		Description: "Cozy waterfront inn with sea-facing rooms.",
		Address:     "17 Quay Street",
		City:        "Lisbon",
		Country:     "Portugal",
		Stars:       3,
		Email:       "hello@harborview.pt",
		Amenities:   []string{"wifi", "breakfast"},
		IsActive:    true,
	}
	db.Create(&harborView)

	log.Println("Creating rooms...")

	rooms := []domain.Room{
		{HotelID: grandPalace.ID, RoomNumber: "101", Type: domain.RoomDouble, PricePerNight: 180, Capacity: 2,
			Description: "Double room facing the square", Amenities: []string{"minibar", "ac"}, IsActive: true},
		{HotelID: grandPalace.ID, RoomNumber: "102", Type: domain.RoomTwin, PricePerNight: 160, Capacity: 2,
			Amenities: []string{"ac"}, IsActive: true},
		{HotelID: grandPalace.ID, RoomNumber: "301", Type: domain.RoomSuite, PricePerNight: 420, Capacity: 4,
			Description: "Corner suite with balcony", Amenities: []string{"minibar", "ac", "balcony"}, IsActive: true},
		{HotelID: grandPalace.ID, RoomNumber: "501", Type: domain.RoomPresidential, PricePerNight: 950, Capacity: 6, IsActive: true},
		{HotelID: harborView.ID, RoomNumber: "1", Type: domain.RoomSingle, PricePerNight: 65, Capacity: 1, IsActive: true},
		{HotelID: harborView.ID, RoomNumber: "2", Type: domain.RoomDouble, PricePerNight: 90, Capacity: 2,
			Description: "Sea view", IsActive: true},
		{HotelID: harborView.ID, RoomNumber: "3", Type: domain.RoomFamily, PricePerNight: 140, Capacity: 5, IsActive: true},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	log.Printf("Creating %d days of availability...", availabilityDays)

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, room := range rooms {
		batch := make([]domain.RoomAvailability, 0, availabilityDays)
		for d := 0; d < availabilityDays; d++ {
			date := start.AddDate(0, 0, d)
			row := domain.RoomAvailability{
				RoomID:      room.ID,
				Date:        date,
				IsAvailable: true,
			}
			// weekend rates run 25% above base
			if wd := date.Weekday(); wd == time.Friday || wd == time.Saturday {
				override := room.PricePerNight * 1.25
				row.PriceOverride = &override
			}
			batch = append(batch, row)
		}
		db.CreateInBatches(batch, 100)
	}

	log.Println("Seed complete.")
	fmt.Printf("Seeded 3 users, 2 hotels, %d rooms, %d availability days per room.\n", len(rooms), availabilityDays)
}

func createUser(db *gorm.DB, email, password, fullName string, role domain.UserRole) domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	db.Create(&u)
	return u
}
