package service

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService implements account and social-graph use cases.
type UserService struct {
	userRepo repository.UserRepository
}

// SignupInput is the payload for account creation.
type SignupInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// a field untouched.
type UpdateProfileInput struct {
	Name     *string
	Bio      *string
	Location *string
	Website  *string
	Image    *string
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationFieldError("Invalid email", err.Error())
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationFieldError("Invalid username", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationFieldError("Invalid password", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Name:     strings.TrimSpace(in.Name),
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.Classify(err).Code == models.CodeConflict {
			return nil, models.NewConflictError("Email or username already taken")
		}
		return nil, err
	}
	return user, nil
}

// Signin verifies credentials and returns the account. Both unknown email and
// wrong password produce the same UNAUTHORIZED message so the endpoint cannot
// be used to probe for accounts.
func (s *UserService) Signin(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Invalid email or password")
		}
		return nil, err
	}
	if user.Password == "" {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	return s.userRepo.GetByUsername(ctx, username, currentUserID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) > 100 {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = name
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > 500 {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = bio
	}
	if in.Location != nil {
		user.Location = strings.TrimSpace(*in.Location)
	}
	if in.Website != nil {
		website := strings.TrimSpace(*in.Website)
		if err := validation.ValidateURL(website); err != nil {
			return nil, models.NewValidationFieldError("Invalid website URL", err.Error())
		}
		user.Website = website
	}
	if in.Image != nil {
		image := strings.TrimSpace(*in.Image)
		if err := validation.ValidateURL(image); err != nil {
			return nil, models.NewValidationFieldError("Invalid image URL", err.Error())
		}
		user.Image = image
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleFollowResult reports the post-toggle state of the follow edge.
type ToggleFollowResult struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

// ToggleFollow flips the caller's follow edge toward the target. Self-follow
// is rejected before any repository call.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followingID uint) (*ToggleFollowResult, error) {
	if followerID == followingID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	following, count, err := s.userRepo.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	return &ToggleFollowResult{Following: following, FollowerCount: count}, nil
}
