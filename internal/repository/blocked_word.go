package repository

import (
	"context"

	"peached/internal/cache"
	"peached/internal/models"

	"gorm.io/gorm"
)

// BlockedWordRepository manages a user's blocked words list.
type BlockedWordRepository interface {
	// List returns the words in insertion order.
	List(ctx context.Context, userID uint) ([]string, error)
	Add(ctx context.Context, userID uint, word string) error
	Remove(ctx context.Context, userID uint, word string) (bool, error)
}

type blockedWordRepository struct {
	db *gorm.DB
}

func NewBlockedWordRepository(db *gorm.DB) BlockedWordRepository {
	return &blockedWordRepository{db: db}
}

func (r *blockedWordRepository) List(ctx context.Context, userID uint) ([]string, error) {
	words := []string{}
	err := r.db.WithContext(ctx).Model(&models.BlockedWord{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("word", &words).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return words, nil
}

// Add relies on the (user_id, word) unique index, so concurrent adds of the
// same word leave exactly one row.
func (r *blockedWordRepository) Add(ctx context.Context, userID uint, word string) error {
	entry := models.BlockedWord{UserID: userID, Word: word}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return models.NewConflictError("word already in blocked words list")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfiles(ctx, userID)
	return nil
}

func (r *blockedWordRepository) Remove(ctx context.Context, userID uint, word string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND word = ?", userID, word).
		Delete(&models.BlockedWord{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidateProfiles(ctx, userID)
	}
	return res.RowsAffected > 0, nil
}
