package service

import (
	"context"

	"ripple/internal/models"
)

// Stub repositories with injectable behavior. A nil Fn panics, which makes a
// test fail loudly when a service calls something it should not.

type stubPostRepo struct {
	CreateFn      func(ctx context.Context, post *models.Post) error
	GetByIDFn     func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetFeedFn     func(ctx context.Context, cursor uint, limit int, currentUserID uint) ([]*models.Post, error)
	GetByUserIDFn func(ctx context.Context, userID uint, cursor uint, limit int, currentUserID uint) ([]*models.Post, error)
	UpdateFn      func(ctx context.Context, post *models.Post) error
	DeleteFn      func(ctx context.Context, id uint) error
	ToggleLikeFn  func(ctx context.Context, postID, userID uint) (bool, int64, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.CreateFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.GetByIDFn(ctx, id, currentUserID)
}

func (s *stubPostRepo) GetFeed(ctx context.Context, cursor uint, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.GetFeedFn(ctx, cursor, limit, currentUserID)
}

func (s *stubPostRepo) GetByUserID(ctx context.Context, userID uint, cursor uint, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.GetByUserIDFn(ctx, userID, cursor, limit, currentUserID)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	return s.UpdateFn(ctx, post)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	return s.DeleteFn(ctx, id)
}

func (s *stubPostRepo) ToggleLike(ctx context.Context, postID, userID uint) (bool, int64, error) {
	return s.ToggleLikeFn(ctx, postID, userID)
}

type stubCommentRepo struct {
	CreateFn     func(ctx context.Context, comment *models.Comment) error
	GetByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	ListByPostFn func(ctx context.Context, postID uint, cursor uint, limit int) ([]*models.Comment, error)
	DeleteFn     func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return s.CreateFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint, cursor uint, limit int) ([]*models.Comment, error) {
	return s.ListByPostFn(ctx, postID, cursor, limit)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	return s.DeleteFn(ctx, id)
}

type stubUserRepo struct {
	CreateFn         func(ctx context.Context, user *models.User) error
	GetByIDFn        func(ctx context.Context, id uint, currentUserID uint) (*models.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	GetByUsernameFn  func(ctx context.Context, username string, currentUserID uint) (*models.User, error)
	UpdateFn         func(ctx context.Context, user *models.User) error
	ToggleFollowFn   func(ctx context.Context, followerID, followingID uint) (bool, int64, error)
	IsFollowingFn    func(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowerCountFn  func(ctx context.Context, userID uint) (int64, error)
	FollowingCountFn func(ctx context.Context, userID uint) (int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.CreateFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.User, error) {
	return s.GetByIDFn(ctx, id, currentUserID)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.GetByEmailFn(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	return s.GetByUsernameFn(ctx, username, currentUserID)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.UpdateFn(ctx, user)
}

func (s *stubUserRepo) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, int64, error) {
	return s.ToggleFollowFn(ctx, followerID, followingID)
}

func (s *stubUserRepo) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.IsFollowingFn(ctx, followerID, followingID)
}

func (s *stubUserRepo) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.FollowerCountFn(ctx, userID)
}

func (s *stubUserRepo) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.FollowingCountFn(ctx, userID)
}

type stubNotificationRepo struct {
	ListByUserFn  func(ctx context.Context, userID uint, cursor uint, limit int) ([]*models.Notification, error)
	UnreadCountFn func(ctx context.Context, userID uint) (int64, error)
	MarkReadFn    func(ctx context.Context, id, userID uint) error
	MarkAllReadFn func(ctx context.Context, userID uint) error
}

func (s *stubNotificationRepo) ListByUser(ctx context.Context, userID uint, cursor uint, limit int) ([]*models.Notification, error) {
	return s.ListByUserFn(ctx, userID, cursor, limit)
}

func (s *stubNotificationRepo) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.UnreadCountFn(ctx, userID)
}

func (s *stubNotificationRepo) MarkRead(ctx context.Context, id, userID uint) error {
	return s.MarkReadFn(ctx, id, userID)
}

func (s *stubNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	return s.MarkAllReadFn(ctx, userID)
}
