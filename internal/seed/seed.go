// Package seed populates the database with demo data for development.
// Likes, comments, and follows go through the repositories so the seeded
// data carries the same notification side effects as real traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder creates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// Seed fixes the PRNG so repeated runs produce the same mesh.
	Seed int64
}

// DemoPassword is the credential every seeded user signs in with.
const DemoPassword = "Ripple!Demo2024"

// Seeder creates demo users, posts, and the social mesh between them.
type Seeder struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	rng         *rand.Rand
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(opts.Seed)
	return &Seeder{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}
}

// Run seeds the database according to opts.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	users, err := s.createUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	slog.Info("seeded users", slog.Int("count", len(users)))

	posts, err := s.createPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	slog.Info("seeded posts", slog.Int("count", len(posts)))

	likes, comments, err := s.createEngagement(ctx, users, posts)
	if err != nil {
		return fmt.Errorf("create engagement: %w", err)
	}
	slog.Info("seeded engagement", slog.Int("likes", likes), slog.Int("comments", comments))

	follows, err := s.createFollowMesh(ctx, users)
	if err != nil {
		return fmt.Errorf("create follow mesh: %w", err)
	}
	slog.Info("seeded follows", slog.Int("count", follows))

	return nil
}

// ClearAll removes all seeded rows. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"notifications", "likes", "follows", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) createUsers(ctx context.Context, count int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		person := gofakeit.Person()
		username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 999))
		user := &models.User{
			Email:    fmt.Sprintf("%s@example.com", username),
			Username: username,
			Name:     fmt.Sprintf("%s %s", person.FirstName, person.LastName),
			Bio:      gofakeit.Sentence(12),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.CountryAbr()),
			Website:  fmt.Sprintf("https://%s", gofakeit.DomainName()),
			Image:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Password: string(hash),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			Content: gofakeit.Paragraph(1, 3, 8, " "),
			UserID:  author.ID,
		}
		// Roughly a third of posts carry an image.
		if s.rng.Intn(3) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement sprinkles likes and comments across the posts. Going
// through the repositories means notifications are created the same way the
// API creates them.
func (s *Seeder) createEngagement(ctx context.Context, users []*models.User, posts []*models.Post) (likes, comments int, err error) {
	for _, post := range posts {
		for _, user := range users {
			if s.rng.Intn(4) != 0 {
				continue
			}
			if _, _, err := s.postRepo.ToggleLike(ctx, post.ID, user.ID); err != nil {
				return likes, comments, err
			}
			likes++
		}

		commentCount := s.rng.Intn(4)
		for i := 0; i < commentCount; i++ {
			commenter := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				Content: gofakeit.Sentence(s.rng.Intn(12) + 3),
				PostID:  post.ID,
				UserID:  commenter.ID,
			}
			if err := s.commentRepo.Create(ctx, comment); err != nil {
				return likes, comments, err
			}
			comments++
		}
	}
	return likes, comments, nil
}

func (s *Seeder) createFollowMesh(ctx context.Context, users []*models.User) (int, error) {
	follows := 0
	for _, follower := range users {
		for _, target := range users {
			if follower.ID == target.ID || s.rng.Intn(5) != 0 {
				continue
			}
			if _, _, err := s.userRepo.ToggleFollow(ctx, follower.ID, target.ID); err != nil {
				return follows, err
			}
			follows++
		}
	}
	return follows, nil
}
