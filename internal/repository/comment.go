package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, cursor uint, limit int) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and, when the commenter is not the post author,
// the COMMENT notification in one transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "CreateComment", "comments")
	defer span.End()

	var notified bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").First(&post, comment.PostID).Error; err != nil {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if post.UserID != comment.UserID {
			pid := comment.PostID
			cid := comment.ID
			if err := tx.Create(&models.Notification{
				Type:      models.NotificationTypeComment,
				UserID:    post.UserID,
				CreatorID: comment.UserID,
				PostID:    &pid,
				CommentID: &cid,
			}).Error; err != nil {
				return err
			}
			notified = true
		}
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return err
	}

	if notified {
		observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeComment)).Inc()
	}

	cache.Delete(ctx, cache.PostKey(comment.PostID))
	cache.DeleteByPrefix(ctx, "feed:")

	return r.db.WithContext(ctx).Preload("User").First(comment, comment.ID).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns comments oldest-first so threads read top-down,
// over-fetching one row past limit for next-page detection.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, cursor uint, limit int) ([]*models.Comment, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("id ASC").
		Limit(limit + 1)
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}

	var comments []*models.Comment
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		// Drop the notification the comment produced.
		return tx.Where("type = ? AND creator_id = ? AND comment_id = ?",
			models.NotificationTypeComment, comment.UserID, comment.ID).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		return err
	}
	cache.DeleteByPrefix(ctx, "feed:")
	return nil
}
