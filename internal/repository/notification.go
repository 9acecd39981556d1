package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListRecentAndMarkRead(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListRecentAndMarkRead fetches the user's newest notifications and marks the
// unread ones among them as read in the same transaction, so the badge clears
// exactly for what was delivered.
func (r *notificationRepository) ListRecentAndMarkRead(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Actor").
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC").
			Limit(limit).
			Find(&notifications).Error
		if err != nil {
			return err
		}
		var unreadIDs []uint
		for _, n := range notifications {
			if !n.IsRead {
				unreadIDs = append(unreadIDs, n.ID)
			}
		}
		if len(unreadIDs) == 0 {
			return nil
		}
		return tx.Model(&models.Notification{}).
			Where("id IN ?", unreadIDs).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
