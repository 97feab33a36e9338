package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/pagination"
	"ripple/internal/repository"
)

const maxCommentContentLen = 2000

// CommentService implements the comment use cases.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentContentLen {
		return nil, models.NewValidationError("Comment content too long (max 2000 characters)")
	}

	comment := &models.Comment{
		Content: content,
		PostID:  postID,
		UserID:  userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns one page of a post's comments, oldest first. The post
// is looked up first so a missing post surfaces NOT_FOUND instead of an empty
// page.
func (s *CommentService) ListComments(ctx context.Context, postID uint, cursor string, limit int) (pagination.Page[*models.Comment], error) {
	var page pagination.Page[*models.Comment]

	cursorID, err := parseCursor(cursor)
	if err != nil {
		return page, err
	}
	limit = clampLimit(limit)

	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return page, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, cursorID, limit)
	if err != nil {
		return page, err
	}
	return pagination.Paginate(comments, limit), nil
}

// DeleteComment removes the caller's comment.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
