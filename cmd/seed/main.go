// Command seed bulk-loads exercise content from a JSON file into the
// database. Exercises are immutable once loaded; re-running the seeder
// appends, it does not upsert.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	sqliteadapter "github.com/softspoken/nvcpractice/internal/adapter/driven/sqlite"
	"github.com/softspoken/nvcpractice/internal/config"
	"github.com/softspoken/nvcpractice/internal/seed"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "data/exercises.json", "path to the exercise seed file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	exercises, err := seed.File(*file)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		return fmt.Errorf("seed file %s contains no exercises", *file)
	}

	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	repo := sqliteadapter.NewExerciseRepo(db)
	if err := repo.InsertBatch(context.Background(), exercises); err != nil {
		return err
	}

	slog.Info("seed complete", "file", *file, "count", len(exercises), "db", cfg.DBPath)
	return nil
}
