package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotificationList_Pagination(t *testing.T) {
	repo := &stubNotificationRepo{
		ListByUserFn: func(_ context.Context, userID uint, cursor uint, limit int) ([]*models.Notification, error) {
			assert.EqualValues(t, 1, userID)
			assert.EqualValues(t, 0, cursor)
			notifications := make([]*models.Notification, limit+1)
			for i := range notifications {
				notifications[i] = &models.Notification{ID: uint(100 - i)}
			}
			return notifications, nil
		},
	}
	svc := NewNotificationService(repo)

	page, err := svc.List(context.Background(), 1, "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "91", page.NextCursor)
}

func TestNotificationList_InvalidCursor(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{})

	_, err := svc.List(context.Background(), 1, "oops", 10)
	requireAppError(t, err, models.CodeValidation)
}

func TestMarkRead_NotFound(t *testing.T) {
	repo := &stubNotificationRepo{
		MarkReadFn: func(_ context.Context, _, _ uint) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewNotificationService(repo)

	err := svc.MarkRead(context.Background(), 5, 1)
	appErr := requireAppError(t, err, models.CodeNotFound)
	assert.Equal(t, 404, appErr.Status)
}

func TestMarkAllRead_PassesThrough(t *testing.T) {
	var gotUser uint
	repo := &stubNotificationRepo{
		MarkAllReadFn: func(_ context.Context, userID uint) error {
			gotUser = userID
			return nil
		},
	}
	svc := NewNotificationService(repo)

	require.NoError(t, svc.MarkAllRead(context.Background(), 8))
	assert.EqualValues(t, 8, gotUser)
}
