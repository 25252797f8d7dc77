package main

import (
	"fmt"
	"log"
	"time"

	"github.com/benj-n/miguafi/internal/config"
	"github.com/benj-n/miguafi/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Common password for all users
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// Create 5 users, each with a dog
	log.Println("🌱 Seeding 5 users with dogs...")

	var users []model.User
	for i := 1; i <= 5; i++ {
		email := fmt.Sprintf("user%d@miguafi.local", i)

		// Check if exists
		var existing model.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			users = append(users, existing)
			continue
		}

		user := model.User{
			ID:           model.NewUserID(),
			Email:        email,
			PasswordHash: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", email, err)
			continue
		}

		dog := model.Dog{Name: fmt.Sprintf("MEDOR%02d", i)}
		if err := db.Create(&dog).Error; err != nil {
			log.Printf("❌ Failed to create dog for %s: %v", email, err)
		} else {
			db.Create(&model.UserDog{UserID: user.ID, DogID: dog.ID, IsOwner: true})
		}

		users = append(users, user)
		log.Printf("✅ Created user: %s | Pass: %s | Dog: %s", email, password, dog.Name)
	}

	seedAvailability(db, users)

	log.Println("🎉 Seeding completed!")
}

// seedAvailability gives the first two users a matching offer/request pair
// so the notification flow has data to show.
func seedAvailability(db *gorm.DB, users []model.User) {
	if len(users) < 2 {
		return
	}

	var count int64
	db.Model(&model.AvailabilityOffer{}).Count(&count)
	if count > 0 {
		return
	}

	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	offer := model.AvailabilityOffer{
		UserID:  users[0].ID,
		StartAt: base,
		EndAt:   base.Add(6 * time.Hour),
	}
	if err := db.Create(&offer).Error; err != nil {
		log.Printf("❌ Failed to seed offer: %v", err)
		return
	}

	request := model.AvailabilityRequest{
		UserID:  users[1].ID,
		StartAt: base.Add(time.Hour),
		EndAt:   base.Add(3 * time.Hour),
	}
	if err := db.Create(&request).Error; err != nil {
		log.Printf("❌ Failed to seed request: %v", err)
		return
	}

	log.Printf("✅ Seeded a matching offer/request pair for %s and %s", users[0].Email, users[1].Email)
}
