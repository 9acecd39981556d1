package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// notificationPageSize caps how many notifications one retrieval returns.
const notificationPageSize = 50

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Recent returns the viewer's newest notifications, flattened with the actor's
// username. Unread ones among them are marked read atomically with the fetch.
func (s *NotificationService) Recent(ctx context.Context, viewerID uint) ([]models.NotificationView, error) {
	notifications, err := s.notificationRepo.ListRecentAndMarkRead(ctx, viewerID, notificationPageSize)
	if err != nil {
		return nil, err
	}
	views := make([]models.NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, models.NewNotificationView(&notifications[i]))
	}
	return views, nil
}

// UnreadCount returns the viewer's unread notification badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, viewerID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, viewerID)
}
