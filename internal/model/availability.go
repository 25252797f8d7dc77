package model

import "time"

// AvailabilityOffer is a time window during which a user can host a dog.
// Windows of the same user never overlap.
type AvailabilityOffer struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"size:8;index;not null"`
	StartAt   time.Time `json:"start_at" gorm:"not null"`
	EndAt     time.Time `json:"end_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailabilityRequest is a time window during which a user needs hosting.
type AvailabilityRequest struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"size:8;index;not null"`
	StartAt   time.Time `json:"start_at" gorm:"not null"`
	EndAt     time.Time `json:"end_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
