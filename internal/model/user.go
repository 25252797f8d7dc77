package model

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

var userIDMod = big.NewInt(100_000_000)

// NewUserID produces an 8-digit numeric ID derived from a random UUID.
// Collisions are possible and handled by the caller with a bounded retry.
func NewUserID() string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	return fmt.Sprintf("%08d", n.Mod(n, userIDMod))
}

// User represents a registered account with an optional approximate location.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:8"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:254"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	LocationLat  *float64   `json:"location_lat"`
	LocationLng  *float64   `json:"location_lng"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserResponse is the safe version of User for API responses
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	LocationLat *float64  `json:"location_lat"`
	LocationLng *float64  `json:"location_lng"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts User to safe UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		LocationLat: u.LocationLat,
		LocationLng: u.LocationLng,
		CreatedAt:   u.CreatedAt,
	}
}
