package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

func gooseDB(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, mustSub(embedMigrations, migrationsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// MigrateUp applies every pending embedded migration.
func MigrateUp(ctx context.Context, db *gorm.DB) error {
	provider, err := gooseDB(db)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		logMigration(ctx, "migration applied", r)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *gorm.DB) error {
	provider, err := gooseDB(db)
	if err != nil {
		return err
	}
	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	logMigration(ctx, "migration rolled back", result)
	return nil
}

// MigrationState describes one embedded migration.
type MigrationState struct {
	Version int64
	Source  string
	Applied bool
}

// MigrationStatus lists every embedded migration and whether it has been applied.
func MigrationStatus(ctx context.Context, db *gorm.DB) ([]MigrationState, error) {
	provider, err := gooseDB(db)
	if err != nil {
		return nil, err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	out := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
