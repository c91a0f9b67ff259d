// Command seed creates the default category taxonomy in the local
// database. Reseeding an existing database only fills the gaps, so it is
// safe to run repeatedly.
//
// Configuration comes from CONFIG_PATH / environment variables.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/category"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/contact"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/contactcategory"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/contactsubcategory"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/subcategory"
	"github.com/socialcapital-app/backend/internal/app"
	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/internal/service/taxonomy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("seeding taxonomy",
		slog.String("version", app.BuildVersion()),
		slog.String("database", cfg.Database.Path),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlite.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	svc := taxonomy.New(
		logger,
		contact.New(db),
		category.New(db),
		subcategory.New(db),
		contactcategory.New(db),
		contactsubcategory.New(db),
		sqlite.NewTxManager(db),
		cfg.Scoring,
	)

	if err := svc.SeedDefaults(ctx); err != nil {
		logger.Error("seed defaults", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("taxonomy seeded")
}
