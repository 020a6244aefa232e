package service

import (
	"context"
	"strings"

	"peached/internal/models"
	"peached/internal/repository"
	"peached/internal/validation"
)

type AccountService struct {
	users repository.UserRepository
	words repository.BlockedWordRepository
}

func NewAccountService(users repository.UserRepository, words repository.BlockedWordRepository) *AccountService {
	return &AccountService{users: users, words: words}
}

// ProfileUpdate carries optional profile fields. Empty fields are left unchanged.
type ProfileUpdate struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
	URL  string `json:"url"`
}

// ProfileChanges reports the values actually written.
type ProfileChanges struct {
	Name string `json:"name,omitempty"`
	Bio  string `json:"bio,omitempty"`
	URL  string `json:"url,omitempty"`
}

func (s *AccountService) UpdateProfile(ctx context.Context, user *models.User, in ProfileUpdate) (*ProfileChanges, error) {
	changes := &ProfileChanges{}

	if in.Name != "" {
		name := validation.NormalizeText(in.Name)
		if err := validation.ValidateName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		changes.Name = name
	}
	if in.Bio != "" {
		bio := validation.NormalizeText(in.Bio)
		if err := validation.ValidateBio(bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		changes.Bio = bio
	}
	if in.URL != "" {
		changes.URL = validation.NormalizeURL(in.URL)
	}

	if *changes == (ProfileChanges{}) {
		return changes, nil
	}

	if changes.Name != "" {
		user.Name = changes.Name
	}
	if changes.Bio != "" {
		user.Bio = changes.Bio
	}
	if changes.URL != "" {
		user.URL = changes.URL
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return changes, nil
}

func (s *AccountService) ChangeUsername(ctx context.Context, user *models.User, username string) error {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return models.NewValidationError(err.Error())
	}
	if username == user.Username {
		return nil
	}
	user.Username = username
	return s.users.Update(ctx, user)
}

// UsernameAvailable returns a Conflict error when username is taken.
func (s *AccountService) UsernameAvailable(ctx context.Context, username string) error {
	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return models.NewConflictError("username unavailable")
	}
	return nil
}

// EmailAvailable returns a Conflict error when email is taken.
func (s *AccountService) EmailAvailable(ctx context.Context, email string) error {
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return models.NewConflictError("email unavailable")
	}
	return nil
}

// Lookup returns the public view of an active identity.
func (s *AccountService) Lookup(ctx context.Context, username string) (*models.PublicProfile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deactivated {
		return nil, models.NewNotFoundError("user not found")
	}
	return &models.PublicProfile{Name: user.Name, Picture: user.Picture, Bio: user.Bio}, nil
}

func (s *AccountService) BlockedWords(ctx context.Context, userID uint) ([]string, error) {
	return s.words.List(ctx, userID)
}

// AddBlockedWord stores word verbatim: no trimming or case folding.
func (s *AccountService) AddBlockedWord(ctx context.Context, userID uint, word string) error {
	if word == "" {
		return models.NewValidationError("missing word")
	}
	return s.words.Add(ctx, userID, word)
}

func (s *AccountService) RemoveBlockedWord(ctx context.Context, userID uint, word string) error {
	if word == "" {
		return models.NewValidationError("missing word")
	}
	removed, err := s.words.Remove(ctx, userID, word)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("word not in blocked words list")
	}
	return nil
}
