// Package repository persists the domain models through GORM.
package repository

import (
	"peached/internal/database"

	"gorm.io/gorm"
)

// readDB returns the replica for lenient reads when one is configured.
func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}
