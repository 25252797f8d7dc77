package model

import "time"

// Notification is an append-only inbox entry. Rows are only ever created by
// the matcher; nothing in the API mutates them beyond the read flag.
type Notification struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"size:8;index;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
