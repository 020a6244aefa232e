package seed

import (
	"context"
	"fmt"
	"log/slog"

	"peached/internal/models"
	"peached/internal/observability"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	// NumPosts is the total across all users.
	NumPosts int
	// FriendsPerUser is how many references each user gets, capped at NumUsers-1.
	FriendsPerUser int
	ShouldClean    bool
	// FastHash hashes the shared password at bcrypt's minimum cost.
	FastHash  bool
	DryRun    bool
	BatchSize int
	MaxDays   int
	RandSeed  int64
}

// Summary reports what a seeding run created.
type Summary struct {
	Users      int
	Posts      int
	FriendRefs int
}

// createUserAttempts bounds retries when a generated username collides.
const createUserAttempts = 3

// Seed populates the database with demo users, friend references, blocked
// words and posts. Every user logs in with DefaultPassword.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	task := observability.StartTask(ctx, "seed",
		slog.Int("users", opts.NumUsers), slog.Int("posts", opts.NumPosts))

	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db.WithContext(ctx)); err != nil {
			task.Failed(ctx, err)
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	f, err := NewFactory(db.WithContext(ctx), opts)
	if err != nil {
		task.Failed(ctx, err)
		return nil, err
	}

	summary := &Summary{}
	users := make([]*models.User, 0, opts.NumUsers)
	for range opts.NumUsers {
		user, err := createUniqueUser(f)
		if err != nil {
			task.Failed(ctx, err)
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
		if err := f.CreateBlockedWord(user, gofakeit.Word()); err != nil {
			task.Failed(ctx, err)
			return nil, fmt.Errorf("create blocked word: %w", err)
		}
	}
	summary.Users = len(users)

	refs, err := createFriendMesh(f, users, opts.FriendsPerUser)
	if err != nil {
		task.Failed(ctx, err)
		return nil, fmt.Errorf("create friend refs: %w", err)
	}
	summary.FriendRefs = refs

	if len(users) > 0 && opts.NumPosts > 0 {
		posts := make([]*models.Post, 0, opts.NumPosts)
		for i := range opts.NumPosts {
			posts = append(posts, f.BuildPost(users[i%len(users)]))
		}
		if err := f.CreatePostsBatch(posts); err != nil {
			task.Failed(ctx, err)
			return nil, fmt.Errorf("create posts: %w", err)
		}
		summary.Posts = len(posts)
	}

	task.Done(ctx, slog.Int("friend_refs", summary.FriendRefs))
	return summary, nil
}

func createUniqueUser(f *Factory) (*models.User, error) {
	var lastErr error
	for range createUserAttempts {
		user, err := f.CreateUser()
		if err == nil {
			return user, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// createFriendMesh links each user to the next perUser users, wrapping around,
// so references are deterministic and never self-referencing.
func createFriendMesh(f *Factory, users []*models.User, perUser int) (int, error) {
	if len(users) < 2 || perUser <= 0 {
		return 0, nil
	}
	perUser = min(perUser, len(users)-1)

	created := 0
	for i, user := range users {
		for step := 1; step <= perUser; step++ {
			friend := users[(i+step)%len(users)]
			if err := f.CreateFriendRef(user, friend); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.Post{}, &models.FriendRef{}, &models.BlockedWord{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
