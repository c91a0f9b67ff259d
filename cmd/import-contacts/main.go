// Command import-contacts loads a JSON array of flat device-contact
// records and imports them into the local database. Records keep their
// device IDs, so re-running the import updates contacts in place without
// touching their scores.
//
// Flags:
//
//	--file      path to the JSON file (required)
//	--parallel  number of concurrent imports (default 4)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	contactrepo "github.com/socialcapital-app/backend/internal/adapter/sqlite/contact"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/profile"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/score"
	"github.com/socialcapital-app/backend/internal/app"
	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/internal/domain"
	contactsvc "github.com/socialcapital-app/backend/internal/service/contact"
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSON file with device contacts")
	parallelFlag := flag.Int("parallel", 4, "number of concurrent imports")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	data, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Error("read input file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	var records []domain.DeviceContact
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Error("parse input file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := sqlite.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	svc := contactsvc.New(
		logger,
		contactrepo.New(db),
		score.New(db),
		profile.New(db),
		sqlite.NewTxManager(db),
		cfg.Scoring,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallelFlag)
	for _, rec := range records {
		g.Go(func() error {
			_, err := svc.ImportDeviceContact(gctx, rec)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import finished", slog.Int("contacts", len(records)))
}
