package repository

import (
	"github.com/benj-n/miguafi/internal/model"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for Notification
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// Create appends a notification to a user's inbox
func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

// ListByUser returns a user's notifications, newest first
func (r *NotificationRepository) ListByUser(userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}
