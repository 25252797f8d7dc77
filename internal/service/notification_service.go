package service

import (
	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/repository"
)

// NotificationService exposes the per-user inbox. Entries are only ever
// written by the matcher.
type NotificationService struct {
	notifRepo *repository.NotificationRepository
}

func NewNotificationService(notifRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// ListMine returns the caller's notifications, newest first
func (s *NotificationService) ListMine(userID string) ([]model.Notification, error) {
	return s.notifRepo.ListByUser(userID)
}
