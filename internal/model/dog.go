package model

import (
	"regexp"
	"time"
)

// Dog names are uppercase alphanumeric, 3-100 characters, ending in two
// digits (e.g. BUDDY21). The name is fixed at creation.
var dogNamePattern = regexp.MustCompile(`^[A-Z0-9]{1,98}[0-9]{2}$`)

// ValidDogName reports whether name satisfies the naming rule.
func ValidDogName(name string) bool {
	if len(name) < 3 || len(name) > 100 {
		return false
	}
	return dogNamePattern.MatchString(name)
}

// Dog is a dog record shared between one or more owners via UserDog links.
type Dog struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	PhotoURL  *string   `json:"photo_url" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDog links a user to a dog. One row per (user, dog) pair.
type UserDog struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:8"`
	DogID     int       `json:"dog_id" gorm:"primaryKey"`
	IsOwner   bool      `json:"is_owner" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}
