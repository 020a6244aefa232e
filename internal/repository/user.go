package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"peached/internal/cache"
	"peached/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// GetByID returns a live identity with the password hash omitted.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetProfile returns the detached profile view. Everything but the
	// deactivated flag may come from the cache.
	GetProfile(ctx context.Context, id uint) (*models.Profile, error)
	// GetByUsername returns nil, nil when no identity has username.
	// The password hash is included.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetPasswordHash(ctx context.Context, id uint) (string, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
	MarkDeactivationRequested(ctx context.Context, id uint, at time.Time) error
	// CompleteDeactivation deletes the user's posts and sets the deactivated flag
	// in one transaction, returning how many posts were removed.
	CompleteDeactivation(ctx context.Context, id uint) (int64, error)
	ListPendingDeactivations(ctx context.Context) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func userNotFound(id uint) error {
	return models.NewNotFoundError(fmt.Sprintf("user %d not found", id))
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Omit("password").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(id), &profile, cache.ProfileTTL, func() error {
		db := readDB(r.db).WithContext(ctx)

		var user models.User
		if err := db.Omit("password").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return userNotFound(id)
			}
			return models.NewInternalError(err)
		}

		var words []string
		if err := db.Model(&models.BlockedWord{}).Where("user_id = ?", id).Order("id").Pluck("word", &words).Error; err != nil {
			return models.NewInternalError(err)
		}

		var friends []uint
		if err := db.Model(&models.FriendRef{}).Where("user_id = ?", id).Order("id").Pluck("friend_id", &friends).Error; err != nil {
			return models.NewInternalError(err)
		}

		profile = *models.NewProfile(&user, words, friends)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A fill racing CompleteDeactivation can cache a pre-commit row after the
	// invalidation ran, so the flag is always taken from the primary.
	deactivated, err := r.isDeactivated(ctx, id)
	if err != nil {
		return nil, err
	}
	if deactivated && !profile.Deactivated {
		cache.InvalidateProfiles(ctx, id)
	}
	profile.Deactivated = deactivated
	return &profile, nil
}

func (r *userRepository) isDeactivated(ctx context.Context, id uint) (bool, error) {
	var flags []bool
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Limit(1).Pluck("deactivated", &flags).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	if len(flags) == 0 {
		return false, userNotFound(id)
	}
	return flags[0], nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetPasswordHash(ctx context.Context, id uint) (string, error) {
	var hashes []string
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Limit(1).Pluck("password", &hashes).Error; err != nil {
		return "", models.NewInternalError(err)
	}
	if len(hashes) == 0 {
		return "", userNotFound(id)
	}
	return hashes[0], nil
}

func (r *userRepository) exists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

// conflictError names the field behind a unique violation on users.
func conflictError(target string) error {
	if strings.Contains(strings.ToLower(target), "email") {
		return models.NewConflictError("email unavailable")
	}
	return models.NewConflictError("username unavailable")
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if target, ok := uniqueViolation(err); ok {
			return conflictError(target)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes the profile columns of user. Concurrent updates are last-writer-wins.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).Select(models.ProfileColumns).Updates(user).Error
	if err != nil {
		if target, ok := uniqueViolation(err); ok {
			return conflictError(target)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfiles(ctx, user.ID)
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return userNotFound(id)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfiles(ctx, id)
	return nil
}

// MarkDeactivationRequested keeps an existing marker so resumption sees the original request time.
func (r *userRepository) MarkDeactivationRequested(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND deactivation_requested_at IS NULL", id).
		Update("deactivation_requested_at", at).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) CompleteDeactivation(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("author_id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		res = tx.Model(&models.User{}).Where("id = ?", id).Update("deactivated", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, userNotFound(id)
		}
		return 0, models.NewInternalError(err)
	}
	cache.InvalidateProfiles(ctx, id)
	return deleted, nil
}

func (r *userRepository) ListPendingDeactivations(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("deactivation_requested_at IS NOT NULL AND deactivated = ?", false).
		Order("deactivation_requested_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
