package repositories

import (
	"github.com/viewpost-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint) ([]models.Notification, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAllAsRead(recipientID uint) error
	DeleteByTarget(targetType string, targetIDs []uint) error
	DeleteByUserID(userID uint) error
}

type gormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a GORM-backed NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByRecipientID returns all of a recipient's notifications, newest first.
func (r *gormNotificationRepository) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *gormNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *gormNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
}

// DeleteByTarget removes notifications referencing the given targets,
// used by cascading deletes.
func (r *gormNotificationRepository) DeleteByTarget(targetType string, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&models.Notification{}).Error
}

// DeleteByUserID removes notifications where the user is recipient or actor.
func (r *gormNotificationRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("recipient_id = ? OR actor_id = ?", userID, userID).
		Delete(&models.Notification{}).Error
}
