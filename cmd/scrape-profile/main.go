// Command scrape-profile fetches a public profile URL, prints the
// extracted fields as JSON, and optionally merges them into a stored
// contact.
//
// Flags:
//
//	--url      profile URL to fetch (required)
//	--contact  contact ID to apply the scraped fields to (optional)
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

	"github.com/socialcapital-app/backend/internal/adapter/scrape"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	contactrepo "github.com/socialcapital-app/backend/internal/adapter/sqlite/contact"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/profile"
	"github.com/socialcapital-app/backend/internal/adapter/sqlite/score"
	"github.com/socialcapital-app/backend/internal/app"
	"github.com/socialcapital-app/backend/internal/config"
	contactsvc "github.com/socialcapital-app/backend/internal/service/contact"
)

func main() {
	urlFlag := flag.String("url", "", "profile URL to fetch")
	contactFlag := flag.String("contact", "", "contact ID to apply the scraped fields to")
	flag.Parse()

	if *urlFlag == "" {
		log.Fatal("--url is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := scrape.New(cfg.Scraper, logger)
	result := client.FetchPublicProfile(ctx, *urlFlag)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	os.Stdout.Write(append(out, '\n'))

	if *contactFlag == "" {
		return
	}

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

	diff := contactsvc.ProfileDiff{
		Source: scrape.DetectSource(*urlFlag),
		URL:    *urlFlag,
	}
	if result.FirstName != "" {
		diff.FirstName = &result.FirstName
	}
	if result.LastName != "" {
		diff.LastName = &result.LastName
	}
	if result.Organization != "" {
		diff.Organization = &result.Organization
	}
	if result.Position != "" {
		diff.Position = &result.Position
	}
	if result.AvatarURL != "" {
		diff.PhotoURI = &result.AvatarURL
	}

	if _, err := svc.ApplyProfileDiff(ctx, *contactFlag, diff); err != nil {
		logger.Error("apply profile diff", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("profile applied", slog.String("contact_id", *contactFlag))
}
