package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestToggleFollow_RejectsSelfFollow(t *testing.T) {
	var repoCalled bool
	repo := &stubUserRepo{
		ToggleFollowFn: func(_ context.Context, _, _ uint) (bool, int64, error) {
			repoCalled = true
			return true, 1, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.ToggleFollow(context.Background(), 7, 7)
	appErr := requireAppError(t, err, models.CodeValidation)
	assert.Equal(t, "Cannot follow yourself", appErr.Message)
	assert.False(t, repoCalled, "repository must not be called on self-follow")
}

func TestToggleFollow_PassesThrough(t *testing.T) {
	repo := &stubUserRepo{
		ToggleFollowFn: func(_ context.Context, followerID, followingID uint) (bool, int64, error) {
			assert.EqualValues(t, 1, followerID)
			assert.EqualValues(t, 2, followingID)
			return true, 9, nil
		},
	}
	svc := NewUserService(repo)

	res, err := svc.ToggleFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.EqualValues(t, 9, res.FollowerCount)
}

func TestSignup_Validation(t *testing.T) {
	var repoCalled bool
	repo := &stubUserRepo{
		CreateFn: func(_ context.Context, _ *models.User) error {
			repoCalled = true
			return nil
		},
	}
	svc := NewUserService(repo)

	cases := []struct {
		name  string
		input SignupInput
	}{
		{"bad email", SignupInput{Email: "nope", Username: "alice", Password: "Str0ng!Passw0rd"}},
		{"bad username", SignupInput{Email: "a@example.com", Username: "_x", Password: "Str0ng!Passw0rd"}},
		{"weak password", SignupInput{Email: "a@example.com", Username: "alice", Password: "weak"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.input)
			requireAppError(t, err, models.CodeValidation)
			assert.False(t, repoCalled)
		})
	}
}

func TestSignup_HashesPasswordAndNormalizesEmail(t *testing.T) {
	var created *models.User
	repo := &stubUserRepo{
		CreateFn: func(_ context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Alice@Example.COM ",
		Username: "alice",
		Password: "Str0ng!Passw0rd",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NotEqual(t, "Str0ng!Passw0rd", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Str0ng!Passw0rd")))
}

func TestSignup_DuplicateIsConflict(t *testing.T) {
	repo := &stubUserRepo{
		CreateFn: func(_ context.Context, _ *models.User) error {
			return gorm.ErrDuplicatedKey
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "a@example.com",
		Username: "alice",
		Password: "Str0ng!Passw0rd",
	})
	appErr := requireAppError(t, err, models.CodeConflict)
	assert.Equal(t, "Email or username already taken", appErr.Message)
}

func TestSignin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!Passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if email == "alice@example.com" {
				return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewUserService(repo)

	user, err := svc.Signin(context.Background(), "Alice@example.com", "Str0ng!Passw0rd")
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)

	// Unknown email and wrong password produce identical errors.
	_, errUnknown := svc.Signin(context.Background(), "bob@example.com", "Str0ng!Passw0rd")
	_, errWrongPw := svc.Signin(context.Background(), "alice@example.com", "wrong")
	appUnknown := requireAppError(t, errUnknown, models.CodeUnauthorized)
	appWrongPw := requireAppError(t, errWrongPw, models.CodeUnauthorized)
	assert.Equal(t, appUnknown.Message, appWrongPw.Message)
}

func TestSignin_ExternalAccountHasNoPassword(t *testing.T) {
	repo := &stubUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Password: ""}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Signin(context.Background(), "sso@example.com", "anything")
	requireAppError(t, err, models.CodeUnauthorized)
}

func TestUpdateProfile_ValidatesWebsite(t *testing.T) {
	repo := &stubUserRepo{
		GetByIDFn: func(_ context.Context, id uint, _ uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		},
		UpdateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
	svc := NewUserService(repo)

	bad := "javascript:alert(1)"
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Website: &bad})
	requireAppError(t, err, models.CodeValidation)

	good := "https://alice.example.com"
	user, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Website: &good})
	require.NoError(t, err)
	assert.Equal(t, good, user.Website)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	repo := &stubUserRepo{
		GetByIDFn: func(_ context.Context, id uint, _ uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Old Name", Bio: "old bio"}, nil
		},
		UpdateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
	svc := NewUserService(repo)

	bio := "  new bio  "
	user, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "Old Name", user.Name, "unset fields stay untouched")
}
