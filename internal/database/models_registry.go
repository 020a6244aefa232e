package database

import "peached/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.BlockedWord{},
		&models.FriendRef{},
		&models.Post{},
	}
}
