package server

import (
	"context"
	"time"

	"peached/internal/config"
	"peached/internal/models"
	"peached/internal/repository"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetPasswordHash(ctx context.Context, id uint) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) MarkDeactivationRequested(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) CompleteDeactivation(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ListPendingDeactivations(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uint), args.Error(1)
}

// MockBlockedWordRepository is a mock of the BlockedWordRepository interface
type MockBlockedWordRepository struct {
	mock.Mock
}

func (m *MockBlockedWordRepository) List(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlockedWordRepository) Add(ctx context.Context, userID uint, word string) error {
	return m.Called(ctx, userID, word).Error(0)
}

func (m *MockBlockedWordRepository) Remove(ctx context.Context, userID uint, word string) (bool, error) {
	args := m.Called(ctx, userID, word)
	return args.Bool(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  testSecret,
		BcryptCost: bcrypt.MinCost,
	}
}

// newMockServer wires a Server over mocks. Repositories left nil in repos are
// not expected to be reached.
func newMockServer(cfg *config.Config, repos repository.UserRepository, words repository.BlockedWordRepository) *Server {
	return newServer(cfg, nil, nil, Repositories{Users: repos, BlockedWords: words})
}
