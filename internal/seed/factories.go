// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"peached/internal/auth"
	"peached/internal/models"
	"peached/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded identity logs in with.
const DefaultPassword = "password123"

var usernameStrip = regexp.MustCompile(`[^A-Za-z0-9_.]`)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	hash string
	rnd  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to db. The shared password is hashed once.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	cost := bcrypt.DefaultCost
	if opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := auth.HashPassword(DefaultPassword, cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)

	return &Factory{db: db, opts: opts, hash: hash, rnd: rand.New(rand.NewSource(seed)), nextID: 1000}, nil
}

// BuildUser constructs a valid identity without saving it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	username := usernameStrip.ReplaceAllString(gofakeit.Username(), "")
	username = fmt.Sprintf("%s%d", username, gofakeit.Number(100, 999))
	if len(username) > validation.UsernameMaxLength {
		username = username[len(username)-validation.UsernameMaxLength:]
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password: f.hash,
		Bio:      truncate(gofakeit.Sentence(10), validation.BioMaxLength),
		URL:      gofakeit.URL(),
		Picture:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists an identity.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post by author with a created_at spread over MaxDays.
func (f *Factory) BuildPost(author *models.User) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	age := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24*60))*time.Minute

	return &models.Post{
		AuthorID:  author.ID,
		Content:   truncate(gofakeit.Paragraph(1, 3, 8, " "), validation.PostMaxLength),
		CreatedAt: time.Now().Add(-age),
	}
}

// CreatePostsBatch persists posts in batches of BatchSize.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun || len(posts) == 0 {
		return nil
	}
	batch := f.opts.BatchSize
	if batch <= 0 {
		batch = 100
	}
	return f.db.CreateInBatches(posts, batch).Error
}

// CreateFriendRef adds friend to user's friends list.
func (f *Factory) CreateFriendRef(user, friend *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.FriendRef{UserID: user.ID, FriendID: friend.ID}).Error
}

// CreateBlockedWord adds word to user's blocked words.
func (f *Factory) CreateBlockedWord(user *models.User, word string) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.BlockedWord{UserID: user.ID, Word: word}).Error
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
