package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/pagination"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

const maxPostContentLen = 5000

// PostService implements the post use cases.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostContentLen {
		return nil, models.NewValidationError("Post content too long (max 5000 characters)")
	}
	imageURL := strings.TrimSpace(in.ImageURL)
	if err := validation.ValidateURL(imageURL); err != nil {
		return nil, models.NewValidationFieldError("Invalid image URL", err.Error())
	}

	post := &models.Post{
		Content:  content,
		ImageURL: imageURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetFeed returns one reverse-chronological feed page.
func (s *PostService) GetFeed(ctx context.Context, cursor string, limit int, currentUserID uint) (pagination.Page[*models.Post], error) {
	var page pagination.Page[*models.Post]

	cursorID, err := parseCursor(cursor)
	if err != nil {
		return page, err
	}
	limit = clampLimit(limit)

	posts, err := s.postRepo.GetFeed(ctx, cursorID, limit, currentUserID)
	if err != nil {
		return page, err
	}
	return pagination.Paginate(posts, limit), nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetUserPosts returns one page of a single author's posts.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, cursor string, limit int, currentUserID uint) (pagination.Page[*models.Post], error) {
	var page pagination.Page[*models.Post]

	cursorID, err := parseCursor(cursor)
	if err != nil {
		return page, err
	}
	limit = clampLimit(limit)

	posts, err := s.postRepo.GetByUserID(ctx, userID, cursorID, limit, currentUserID)
	if err != nil {
		return page, err
	}
	return pagination.Paginate(posts, limit), nil
}

// UpdatePostInput carries the editable post fields. Nil pointers leave the
// field unchanged.
type UpdatePostInput struct {
	Content  *string
	ImageURL *string
}

// UpdatePost edits the caller's post. Callers other than the author get
// FORBIDDEN.
func (s *PostService) UpdatePost(ctx context.Context, postID, userID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, models.NewValidationError("Post content is required")
		}
		if len(content) > maxPostContentLen {
			return nil, models.NewValidationError("Post content too long (max 5000 characters)")
		}
		post.Content = content
	}
	if in.ImageURL != nil {
		imageURL := strings.TrimSpace(*in.ImageURL)
		if err := validation.ValidateURL(imageURL); err != nil {
			return nil, models.NewValidationFieldError("Invalid image URL", err.Error())
		}
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// DeletePost removes the caller's post. Callers other than the author get
// FORBIDDEN, never a silent no-op.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLikeResult reports the post-toggle state.
type ToggleLikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*ToggleLikeResult, error) {
	liked, count, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Liked: liked, LikeCount: count}, nil
}
