package service

import (
	"context"
	"time"

	"peached/internal/models"
)

type userRepoStub struct {
	getByIDFn                   func(context.Context, uint) (*models.User, error)
	getProfileFn                func(context.Context, uint) (*models.Profile, error)
	getByUsernameFn             func(context.Context, string) (*models.User, error)
	getPasswordHashFn           func(context.Context, uint) (string, error)
	usernameExistsFn            func(context.Context, string) (bool, error)
	emailExistsFn               func(context.Context, string) (bool, error)
	createFn                    func(context.Context, *models.User) error
	updateFn                    func(context.Context, *models.User) error
	updatePasswordFn            func(context.Context, uint, string) error
	deleteFn                    func(context.Context, uint) error
	markDeactivationRequestedFn func(context.Context, uint, time.Time) error
	completeDeactivationFn      func(context.Context, uint) (int64, error)
	listPendingDeactivationsFn  func(context.Context) ([]uint, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getProfileFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetPasswordHash(ctx context.Context, id uint) (string, error) {
	return s.getPasswordHashFn(ctx, id)
}
func (s *userRepoStub) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameExistsFn(ctx, username)
}
func (s *userRepoStub) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.emailExistsFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) MarkDeactivationRequested(ctx context.Context, id uint, at time.Time) error {
	return s.markDeactivationRequestedFn(ctx, id, at)
}
func (s *userRepoStub) CompleteDeactivation(ctx context.Context, id uint) (int64, error) {
	return s.completeDeactivationFn(ctx, id)
}
func (s *userRepoStub) ListPendingDeactivations(ctx context.Context) ([]uint, error) {
	return s.listPendingDeactivationsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:                   func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getProfileFn:                func(context.Context, uint) (*models.Profile, error) { return &models.Profile{}, nil },
		getByUsernameFn:             func(context.Context, string) (*models.User, error) { return nil, nil },
		getPasswordHashFn:           func(context.Context, uint) (string, error) { return "", nil },
		usernameExistsFn:            func(context.Context, string) (bool, error) { return false, nil },
		emailExistsFn:               func(context.Context, string) (bool, error) { return false, nil },
		createFn:                    func(context.Context, *models.User) error { return nil },
		updateFn:                    func(context.Context, *models.User) error { return nil },
		updatePasswordFn:            func(context.Context, uint, string) error { return nil },
		deleteFn:                    func(context.Context, uint) error { return nil },
		markDeactivationRequestedFn: func(context.Context, uint, time.Time) error { return nil },
		completeDeactivationFn:      func(context.Context, uint) (int64, error) { return 0, nil },
		listPendingDeactivationsFn:  func(context.Context) ([]uint, error) { return nil, nil },
	}
}

type friendRepoStub struct {
	listFriendIDsFn func(context.Context, uint) ([]uint, error)
	listFriendsFn   func(context.Context, uint) ([]models.FriendSummary, error)
	addFn           func(context.Context, uint, uint) error
	removeFn        func(context.Context, uint, uint) (bool, error)
}

func (s *friendRepoStub) ListFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.listFriendIDsFn(ctx, userID)
}
func (s *friendRepoStub) ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	return s.listFriendsFn(ctx, userID)
}
func (s *friendRepoStub) Add(ctx context.Context, userID, friendID uint) error {
	return s.addFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Remove(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.removeFn(ctx, userID, friendID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		listFriendIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		listFriendsFn:   func(context.Context, uint) ([]models.FriendSummary, error) { return nil, nil },
		addFn:           func(context.Context, uint, uint) error { return nil },
		removeFn:        func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

type wordRepoStub struct {
	listFn   func(context.Context, uint) ([]string, error)
	addFn    func(context.Context, uint, string) error
	removeFn func(context.Context, uint, string) (bool, error)
}

func (s *wordRepoStub) List(ctx context.Context, userID uint) ([]string, error) {
	return s.listFn(ctx, userID)
}
func (s *wordRepoStub) Add(ctx context.Context, userID uint, word string) error {
	return s.addFn(ctx, userID, word)
}
func (s *wordRepoStub) Remove(ctx context.Context, userID uint, word string) (bool, error) {
	return s.removeFn(ctx, userID, word)
}

func noopWordRepo() *wordRepoStub {
	return &wordRepoStub{
		listFn:   func(context.Context, uint) ([]string, error) { return []string{}, nil },
		addFn:    func(context.Context, uint, string) error { return nil },
		removeFn: func(context.Context, uint, string) (bool, error) { return true, nil },
	}
}

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listByAuthorFn func(context.Context, uint, int, int) ([]models.Post, error)
	deleteFn       func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:       func(context.Context, *models.Post) error { return nil },
		getByIDFn:      func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listByAuthorFn: func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
		deleteFn:       func(context.Context, uint) error { return nil },
	}
}
