// Package database opens the GORM connections and manages the schema.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"peached/internal/config"
	"peached/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the primary connection. ReadDB serves lenient reads and falls back to DB.
var (
	DB     *gorm.DB
	ReadDB *gorm.DB
)

// GormLogger routes GORM output through slog so query logs carry request context.
type GormLogger struct {
	logger *slog.Logger
	Config logger.Config
}

// NewGormLogger returns a GormLogger that reports errors and slow queries.
func NewGormLogger(l *slog.Logger) *GormLogger {
	return &GormLogger{
		logger: l,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.Config.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.log(ctx, logger.Info, slog.LevelInfo, msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.log(ctx, logger.Warn, slog.LevelWarn, msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.log(ctx, logger.Error, slog.LevelError, msg, data...)
}

func (l *GormLogger) log(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, data ...interface{}) {
	if l.Config.LogLevel >= min {
		l.logger.Log(ctx, level, fmt.Sprintf(msg, data...))
	}
}

// Trace logs failed and slow statements, and every statement at Info level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.ErrorContext(ctx, "gorm query error", append(attrs, slog.String("error", err.Error()))...)
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold && l.Config.LogLevel >= logger.Warn:
		l.logger.WarnContext(ctx, "gorm slow query", attrs...)
	case l.Config.LogLevel >= logger.Info:
		l.logger.InfoContext(ctx, "gorm query", attrs...)
	}
}

func postgresDSN(host, port, user, password, name, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode)
}

// Dialector selects the GORM driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		return postgres.Open(postgresDSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Connect opens the primary connection and, for postgres with DB_READ_HOST set,
// a read replica. It does not touch the schema; see ApplySchema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(middleware.Logger)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := configurePool(db, cfg.DBDriver); err != nil {
		return nil, err
	}
	middleware.Logger.Info("database connected", slog.String("driver", cfg.DBDriver))

	DB = db
	ReadDB = db

	if cfg.DBDriver == "postgres" && cfg.DBReadHost != "" {
		replica, err := gorm.Open(
			postgres.Open(postgresDSN(cfg.DBReadHost, cfg.DBReadPort, cfg.DBReadUser, cfg.DBReadPassword, cfg.DBName, cfg.DBSSLMode)),
			&gorm.Config{Logger: NewGormLogger(middleware.Logger)},
		)
		if err != nil {
			middleware.Logger.Warn("read replica unavailable, reading from primary", slog.String("error", err.Error()))
		} else if err := configurePool(replica, cfg.DBDriver); err == nil {
			ReadDB = replica
			middleware.Logger.Info("read replica connected", slog.String("host", cfg.DBReadHost))
		}
	}

	return DB, nil
}

func configurePool(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	if driver == "sqlite" {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
		return nil
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

// GetReadDB returns the connection for lenient reads.
func GetReadDB() *gorm.DB {
	if ReadDB != nil {
		return ReadDB
	}
	return DB
}

// ApplySchema brings the schema up to date according to cfg.DBSchemaMode:
// "auto" runs GORM AutoMigrate, "sql" applies the embedded goose migrations,
// "none" leaves the schema alone.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	switch cfg.DBSchemaMode {
	case "auto":
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		middleware.Logger.Info("database schema auto-migrated")
	case "sql":
		if err := MigrateUp(ctx, db); err != nil {
			return err
		}
	case "none":
	default:
		return fmt.Errorf("unknown schema mode %q", cfg.DBSchemaMode)
	}
	return nil
}
