// Package service holds the business rules, sitting between the HTTP handlers
// and the repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"peached/internal/auth"
	"peached/internal/middleware"
	"peached/internal/models"
	"peached/internal/repository"
	"peached/internal/validation"
)

// AuthResult is returned by registration and login.
type AuthResult struct {
	User  models.AccountSummary `json:"user"`
	Token string                `json:"token"`
}

type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates an identity and signs its first token. Username and email
// uniqueness come from the store's unique indexes.
func (s *AuthService) Register(ctx context.Context, in validation.Registration) (*AuthResult, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalErrorMessage("error creating new user", err)
	}

	user := &models.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Password)
	if err != nil {
		// No token means the client never learns the account exists, so remove it.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to remove user after token error",
				slog.Uint64("user_id", uint64(user.ID)), slog.String("error", delErr.Error()))
		}
		return nil, models.NewInternalErrorMessage("error creating new user", err)
	}

	return &AuthResult{User: user.Summary(), Token: token}, nil
}

// Login checks credentials. Unknown usernames, deactivated identities and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("missing fields")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deactivated {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := auth.ComparePassword(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, models.NewInvalidCredentialsError()
		}
		return nil, models.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.ID, user.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{User: user.Summary(), Token: token}, nil
}

// ChangePassword stores a new hash and returns a token bound to it. The hash is
// saved before the token is signed.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, password string) (string, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	const failMsg = "cannot change password at this time"

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", models.NewInternalErrorMessage(failMsg, err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return "", models.NewInternalErrorMessage(failMsg, err)
	}

	token, err := s.tokens.Issue(userID, hash)
	if err != nil {
		return "", models.NewInternalErrorMessage(failMsg, err)
	}
	return token, nil
}

// CurrentUser returns the identity fresh from the primary store.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
