package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ToggleFollow(ctx context.Context, followerID, followingID uint) (following bool, followerCount int64, err error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowerCount(ctx context.Context, userID uint) (int64, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.User, error) {
	var user models.User
	err := r.applyUserDetails(r.db.WithContext(ctx), currentUserID).
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail is used for credential checks and returns the row as stored,
// including the password hash.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	var user models.User
	err := r.applyUserDetails(r.db.WithContext(ctx), currentUserID).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// applyUserDetails adds subqueries to fetch follower counts and following
// status in a single query.
func (r *userRepository) applyUserDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "users.*, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) as follower_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM follows WHERE follows.following_id = users.id AND follows.follower_id = ?) as following", currentUserID)
	}

	return db.Select(selectQuery + ", false as following")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	cache.Delete(ctx, cache.ProfileKey(user.Username))
	return nil
}

// ToggleFollow flips follower's follow edge toward following. The edge
// mutation and its notification side effect commit in one transaction; the
// follower count is recomputed after commit.
func (r *userRepository) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, int64, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ToggleFollow", "follows")
	defer span.End()

	var following bool
	var notified bool
	var targetUsername string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.Select("id", "username").First(&target, followingID).Error; err != nil {
			return err
		}
		targetUsername = target.Username

		var existing models.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			// Retract: remove the edge and the notification it produced.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Where("type = ? AND creator_id = ? AND user_id = ?",
				models.NotificationTypeFollow, followerID, followingID).
				Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			following = false
			return nil
		}

		if err := tx.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Notification{
			Type:      models.NotificationTypeFollow,
			UserID:    followingID,
			CreatorID: followerID,
		}).Error; err != nil {
			return err
		}
		notified = true
		following = true
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return false, 0, err
	}

	if notified {
		observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeFollow)).Inc()
	}

	followerCount, err := r.FollowerCount(ctx, followingID)
	if err != nil {
		return false, 0, err
	}

	cache.Delete(ctx, cache.ProfileKey(targetUsername))

	return following, followerCount, nil
}

// FollowerCount counts the users following userID.
func (r *userRepository) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// FollowingCount counts the users userID follows.
func (r *userRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
