package repository

import (
	"context"

	"peached/internal/cache"
	"peached/internal/models"

	"gorm.io/gorm"
)

// FriendRepository manages one-directional friend references.
type FriendRepository interface {
	ListFriendIDs(ctx context.Context, userID uint) ([]uint, error)
	ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error)
	Add(ctx context.Context, userID, friendID uint) error
	// Remove reports whether a reference existed.
	Remove(ctx context.Context, userID, friendID uint) (bool, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) ListFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.FriendRef{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	friends := []models.FriendSummary{}
	err := readDB(r.db).WithContext(ctx).
		Table("friend_refs").
		Select("users.id, users.name, users.username, users.picture").
		Joins("JOIN users ON users.id = friend_refs.friend_id").
		Where("friend_refs.user_id = ? AND users.deactivated = ?", userID, false).
		Order("friend_refs.id").
		Scan(&friends).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return friends, nil
}

func (r *friendRepository) Add(ctx context.Context, userID, friendID uint) error {
	ref := models.FriendRef{UserID: userID, FriendID: friendID}
	if err := r.db.WithContext(ctx).Create(&ref).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return models.NewConflictError("already in friends list")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfiles(ctx, userID)
	return nil
}

func (r *friendRepository) Remove(ctx context.Context, userID, friendID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.FriendRef{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidateProfiles(ctx, userID)
	}
	return res.RowsAffected > 0, nil
}
