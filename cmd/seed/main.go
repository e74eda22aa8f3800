package main

import (
	"log"
	"os"

	"homestay-be/internal/model"
	"homestay-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding homestay data...")

	// Admin account. Password comes from env so the default never ships.
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@homestay.local"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
		color.Yellow("SEED_ADMIN_PASSWORD not set, using default (change it)")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: hash admin password: %v", err)
	}
	hashStr := string(hash)

	var existing model.User
	err = db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		color.Yellow("Admin user %s already exists, skipping", adminEmail)
	} else {
		admin := model.User{
			Email:        adminEmail,
			PasswordHash: &hashStr,
			FullName:     "Homestay Admin",
			Role:         "admin",
			Status:       "active",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Error: create admin user: %v", err)
		}
		color.Green("Created admin user %s", adminEmail)
	}

	// Default accommodation so the booking flow works out of the box.
	var count int64
	db.Model(&model.Accommodation{}).Count(&count)
	if count > 0 {
		color.Yellow("Accommodations already seeded, skipping")
	} else {
		accommodation := model.Accommodation{
			Name:          "Riverside Homestay",
			Description:   "Family-run homestay by the river with home-cooked meals.",
			MaxMembers:    20,
			BookedMembers: 0,
			VegRate:       800,
			NonVegRate:    1100,
			PricePerNight: 1500,
		}
		if err := db.Create(&accommodation).Error; err != nil {
			log.Fatalf("Error: create accommodation: %v", err)
		}
		color.Green("Created accommodation %s", accommodation.Name)
	}

	color.Cyan("Seeding done.")
}
