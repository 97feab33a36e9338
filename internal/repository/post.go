// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetFeed(ctx context.Context, cursor uint, limit int, currentUserID uint) ([]*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, cursor uint, limit int, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, postID, userID uint) (liked bool, likeCount int64, err error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	cache.DeleteByPrefix(ctx, "feed:")
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetFeed returns the reverse-chronological feed page starting after cursor
// (exclusive). It over-fetches one row past limit so the caller can detect a
// next page.
func (r *postRepository) GetFeed(ctx context.Context, cursor uint, limit int, currentUserID uint) ([]*models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetFeed", "posts")
	defer span.End()

	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Order("posts.id DESC").
		Limit(limit + 1)
	if cursor > 0 {
		q = q.Where("posts.id < ?", cursor)
	}

	var posts []*models.Post
	if err := q.Find(&posts).Error; err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, cursor uint, limit int, currentUserID uint) ([]*models.Post, error) {
	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("posts.user_id = ?", userID).
		Order("posts.id DESC").
		Limit(limit + 1)
	if cursor > 0 {
		q = q.Where("posts.id < ?", cursor)
	}

	var posts []*models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comment_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as like_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.Delete(ctx, cache.PostKey(post.ID))
	cache.DeleteByPrefix(ctx, "feed:")
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Likes are hard-deleted with the post; notifications about it go too.
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&models.Notification{}).Error
	})
	if err != nil {
		return err
	}
	cache.Delete(ctx, cache.PostKey(id))
	cache.DeleteByPrefix(ctx, "feed:")
	return nil
}

// ToggleLike flips the caller's like on a post. The like row mutation and its
// notification side effect commit in one transaction; the count is recomputed
// after commit so concurrent toggles never return stale values.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, int64, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ToggleLike", "likes")
	defer span.End()

	var liked bool
	var notified bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").First(&post, postID).Error; err != nil {
			return err
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			// Retract: remove the like and the notification it produced.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Where("type = ? AND creator_id = ? AND post_id = ?",
				models.NotificationTypeLike, userID, postID).
				Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			liked = false
			return nil
		}

		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if post.UserID != userID {
			pid := postID
			if err := tx.Create(&models.Notification{
				Type:      models.NotificationTypeLike,
				UserID:    post.UserID,
				CreatorID: userID,
				PostID:    &pid,
			}).Error; err != nil {
				return err
			}
			notified = true
		}
		liked = true
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return false, 0, err
	}

	if notified {
		observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeLike)).Inc()
	}

	var likeCount int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).Count(&likeCount).Error; err != nil {
		return false, 0, err
	}

	cache.Delete(ctx, cache.PostKey(postID))
	cache.DeleteByPrefix(ctx, "feed:")

	return liked, likeCount, nil
}
