package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := models.Classify(err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestCreatePost_TrimsContent(t *testing.T) {
	repo := &stubPostRepo{
		CreateFn: func(_ context.Context, post *models.Post) error {
			post.ID = 1
			return nil
		},
		GetByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Content: "hello"}, nil
		},
	}
	svc := NewPostService(repo)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Content: "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
}

func TestCreatePost_Validation(t *testing.T) {
	var repoCalled bool
	repo := &stubPostRepo{
		CreateFn: func(_ context.Context, _ *models.Post) error {
			repoCalled = true
			return nil
		},
	}
	svc := NewPostService(repo)

	cases := []struct {
		name  string
		input CreatePostInput
	}{
		{"empty content", CreatePostInput{UserID: 1, Content: "   "}},
		{"too long", CreatePostInput{UserID: 1, Content: strings.Repeat("a", 5001)}},
		{"bad image url", CreatePostInput{UserID: 1, Content: "ok", ImageURL: "not-a-url"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), tc.input)
			requireAppError(t, err, models.CodeValidation)
			assert.False(t, repoCalled, "repository must not be called on invalid input")
		})
	}
}

func TestCreatePost_BoundaryLength(t *testing.T) {
	repo := &stubPostRepo{
		CreateFn: func(_ context.Context, post *models.Post) error {
			post.ID = 1
			return nil
		},
		GetByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
	}
	svc := NewPostService(repo)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Content: strings.Repeat("a", 5000),
	})
	assert.NoError(t, err, "exactly 5000 characters is allowed")
}

func TestGetFeed_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &stubPostRepo{
		GetFeedFn: func(_ context.Context, _ uint, limit int, _ uint) ([]*models.Post, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewPostService(repo)

	cases := []struct {
		requested int
		want      int
	}{
		{0, 10},
		{-3, 10},
		{1, 1},
		{50, 50},
		{200, 50},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("limit %d", tc.requested), func(t *testing.T) {
			_, err := svc.GetFeed(context.Background(), "", tc.requested, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, gotLimit)
		})
	}
}

func TestGetFeed_InvalidCursor(t *testing.T) {
	svc := NewPostService(&stubPostRepo{})

	_, err := svc.GetFeed(context.Background(), "abc", 10, 0)
	requireAppError(t, err, models.CodeValidation)

	_, err = svc.GetFeed(context.Background(), "0", 10, 0)
	requireAppError(t, err, models.CodeValidation)
}

func TestGetFeed_Pagination(t *testing.T) {
	repo := &stubPostRepo{
		GetFeedFn: func(_ context.Context, cursor uint, limit int, _ uint) ([]*models.Post, error) {
			assert.EqualValues(t, 20, cursor)
			posts := make([]*models.Post, limit+1)
			for i := range posts {
				posts[i] = &models.Post{ID: uint(20 - 1 - i)}
			}
			return posts, nil
		},
	}
	svc := NewPostService(repo)

	page, err := svc.GetFeed(context.Background(), "20", 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, page.Items[9].Cursor(), page.NextCursor)
}

func TestDeletePost_Ownership(t *testing.T) {
	var deleted bool
	repo := &stubPostRepo{
		GetByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		DeleteFn: func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewPostService(repo)

	err := svc.DeletePost(context.Background(), 5, 2)
	requireAppError(t, err, models.CodeForbidden)
	assert.False(t, deleted)

	require.NoError(t, svc.DeletePost(context.Background(), 5, 1))
	assert.True(t, deleted)
}

func TestUpdatePost_Ownership(t *testing.T) {
	var updated bool
	repo := &stubPostRepo{
		GetByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Content: "original"}, nil
		},
		UpdateFn: func(_ context.Context, _ *models.Post) error {
			updated = true
			return nil
		},
	}
	svc := NewPostService(repo)

	content := "edited"
	_, err := svc.UpdatePost(context.Background(), 5, 2, UpdatePostInput{Content: &content})
	requireAppError(t, err, models.CodeForbidden)
	assert.False(t, updated)

	_, err = svc.UpdatePost(context.Background(), 5, 1, UpdatePostInput{Content: &content})
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestUpdatePost_PartialUpdate(t *testing.T) {
	stored := &models.Post{ID: 5, UserID: 1, Content: "original", ImageURL: "https://example.com/a.png"}
	repo := &stubPostRepo{
		GetByIDFn: func(_ context.Context, _ uint, _ uint) (*models.Post, error) {
			clone := *stored
			return &clone, nil
		},
		UpdateFn: func(_ context.Context, post *models.Post) error {
			stored = post
			return nil
		},
	}
	svc := NewPostService(repo)

	content := "  edited  "
	_, err := svc.UpdatePost(context.Background(), 5, 1, UpdatePostInput{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Content)
	assert.Equal(t, "https://example.com/a.png", stored.ImageURL, "image stays when not sent")

	empty := ""
	_, err = svc.UpdatePost(context.Background(), 5, 1, UpdatePostInput{Content: &empty})
	requireAppError(t, err, models.CodeValidation)

	bad := "not-a-url"
	_, err = svc.UpdatePost(context.Background(), 5, 1, UpdatePostInput{ImageURL: &bad})
	requireAppError(t, err, models.CodeValidation)
}

func TestToggleLike_PassesThrough(t *testing.T) {
	repo := &stubPostRepo{
		ToggleLikeFn: func(_ context.Context, postID, userID uint) (bool, int64, error) {
			assert.EqualValues(t, 5, postID)
			assert.EqualValues(t, 2, userID)
			return true, 3, nil
		},
	}
	svc := NewPostService(repo)

	res, err := svc.ToggleLike(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 3, res.LikeCount)
}
