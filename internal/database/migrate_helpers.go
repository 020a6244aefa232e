package database

import (
	"context"
	"io/fs"
	"log/slog"

	"peached/internal/middleware"

	"github.com/pressly/goose/v3"
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func logMigration(ctx context.Context, msg string, r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	middleware.Logger.InfoContext(ctx, msg,
		slog.Int64("version", r.Source.Version),
		slog.String("source", r.Source.Path),
		slog.Duration("duration", r.Duration),
	)
}
