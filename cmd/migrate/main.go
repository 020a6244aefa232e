// Command migrate applies, rolls back or reports the versioned SQL schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"peached/internal/bootstrap"
	"peached/internal/config"
	"peached/internal/database"
	"peached/internal/middleware"
)

const usageText = `usage: migrate <command>

  up      apply every pending migration
  down    roll back the most recent migration
  status  list migrations and whether they are applied
  auto    run GORM AutoMigrate instead of the SQL files (development only)`

func main() {
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usageText) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), flag.Arg(0)); err != nil {
		middleware.Logger.Error("migrate failed", slog.String("command", flag.Arg(0)), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	middleware.ConfigureLogger(cfg.Env, os.Stderr)

	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SkipSchema: true, SkipRedis: true})
	if err != nil {
		return err
	}
	db := rt.DB

	switch command {
	case "up":
		return database.MigrateUp(ctx, db)
	case "down":
		return database.MigrateDown(ctx, db)
	case "status":
		states, err := database.MigrationStatus(ctx, db)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTATE\tSOURCE")
		for _, s := range states {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(w, "%05d\t%s\t%s\n", s.Version, state, s.Source)
		}
		return w.Flush()
	case "auto":
		cfg.DBSchemaMode = "auto"
		return database.ApplySchema(ctx, db, cfg)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
