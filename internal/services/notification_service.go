package services

import (
	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationService exposes the recipient-facing side of the fan-out.
// Recording happens inside the triggering mutation's transaction via
// recordNotification, never through an async queue.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListAndMarkRead atomically marks every unread notification read, then
// returns the recipient's full list newest-first. Listing consumes the
// unread state: a second call returns the same rows, all read.
func (s *NotificationService) ListAndMarkRead(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewNotificationRepository(tx)
		if err := repo.MarkAllAsRead(recipientID); err != nil {
			return err
		}
		var err error
		notifications, err = repo.GetByRecipientID(recipientID)
		return err
	})
	if err != nil {
		return nil, wrapTx(err)
	}
	return notifications, nil
}

// UnreadCount returns the badge count without consuming unread state.
func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	count, err := repositories.NewNotificationRepository(s.db).GetUnreadCount(recipientID)
	if err != nil {
		return 0, wrapTx(err)
	}
	return count, nil
}

// recordNotification persists one notification inside the caller's
// transaction. Self-actions are suppressed here so every event source
// shares the same rule.
func recordNotification(tx *gorm.DB, n models.Notification) error {
	if n.ActorID == n.RecipientID {
		return nil
	}
	return repositories.NewNotificationRepository(tx).CreateNotification(&n)
}
