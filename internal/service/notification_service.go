package service

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/pagination"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

// NotificationService implements the notification use cases.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns one page of the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, cursor string, limit int) (pagination.Page[*models.Notification], error) {
	var page pagination.Page[*models.Notification]

	cursorID, err := parseCursor(cursor)
	if err != nil {
		return page, err
	}
	limit = clampLimit(limit)

	notifications, err := s.notificationRepo.ListByUser(ctx, userID, cursorID, limit)
	if err != nil {
		return page, err
	}
	return pagination.Paginate(notifications, limit), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one of the caller's notifications read. A notification that
// does not exist or belongs to someone else surfaces NOT_FOUND either way so
// the endpoint never reveals other users' notification ids.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	err := s.notificationRepo.MarkRead(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Notification", id)
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
