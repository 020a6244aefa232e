package service

import (
	"context"

	"peached/internal/models"
	"peached/internal/repository"
)

type FriendService struct {
	users   repository.UserRepository
	friends repository.FriendRepository
}

func NewFriendService(users repository.UserRepository, friends repository.FriendRepository) *FriendService {
	return &FriendService{users: users, friends: friends}
}

func (s *FriendService) List(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	return s.friends.ListFriends(ctx, userID)
}

func (s *FriendService) resolve(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deactivated {
		return nil, models.NewNotFoundError("user not found")
	}
	return user, nil
}

// Add appends a reference from userID to username. The reverse reference is not created.
func (s *FriendService) Add(ctx context.Context, userID uint, username string) error {
	friend, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if friend.ID == userID {
		return models.NewValidationError("cannot add yourself as a friend")
	}
	return s.friends.Add(ctx, userID, friend.ID)
}

func (s *FriendService) Remove(ctx context.Context, userID uint, username string) error {
	friend, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	removed, err := s.friends.Remove(ctx, userID, friend.ID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("user not in friends list")
	}
	return nil
}
