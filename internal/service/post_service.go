package service

import (
	"context"
	"fmt"
	"strings"

	"peached/internal/models"
	"peached/internal/repository"
	"peached/internal/validation"
)

type PostService struct {
	users repository.UserRepository
	posts repository.PostRepository
}

func NewPostService(users repository.UserRepository, posts repository.PostRepository) *PostService {
	return &PostService{users: users, posts: posts}
}

func (s *PostService) Create(ctx context.Context, authorID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	post := &models.Post{AuthorID: authorID, Content: content}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByUsername returns an active author's posts, newest first.
func (s *PostService) ListByUsername(ctx context.Context, username string, limit, offset int) ([]models.Post, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil || author.Deactivated {
		return nil, models.NewNotFoundError("user not found")
	}
	return s.posts.ListByAuthor(ctx, author.ID, limit, offset)
}

// Delete removes a post authored by authorID. Other authors' posts look absent.
func (s *PostService) Delete(ctx context.Context, authorID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != authorID {
		return models.NewNotFoundError(fmt.Sprintf("post %d not found", postID))
	}
	return s.posts.Delete(ctx, postID)
}
