// Package contact implements contact lifecycle use cases: device import,
// profile updates, scraped-profile merging, manual value scoring, and
// search. Every mutation that touches more than one store runs inside a
// single transaction.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/internal/domain"
	"github.com/socialcapital-app/backend/internal/service/scoring"
)

//go:generate moq -out mocks_moq_test.go . ContactRepo ScoreRepo ProfileRepo TxManager

// ContactRepo is the contact store surface this service needs.
type ContactRepo interface {
	GetByID(ctx context.Context, id string) (domain.Contact, error)
	Upsert(ctx context.Context, c domain.Contact) error
	Search(ctx context.Context, query string, limit int) ([]domain.Contact, error)
}

// ScoreRepo is the score store surface this service needs.
type ScoreRepo interface {
	Get(ctx context.Context, contactID string) (domain.Score, error)
	Upsert(ctx context.Context, s domain.Score) error
}

// ProfileRepo is the social-profile store surface this service needs.
type ProfileRepo interface {
	ListByContact(ctx context.Context, contactID string) ([]domain.SocialProfile, error)
	Upsert(ctx context.Context, p domain.SocialProfile) error
}

// TxManager runs a function inside one storage transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the contact use cases.
type Service struct {
	log      *slog.Logger
	contacts ContactRepo
	scores   ScoreRepo
	profiles ProfileRepo
	tx       TxManager
	cfg      config.ScoringConfig
}

// New creates the contact service.
func New(
	log *slog.Logger,
	contacts ContactRepo,
	scores ScoreRepo,
	profiles ProfileRepo,
	tx TxManager,
	cfg config.ScoringConfig,
) *Service {
	return &Service{
		log:      log.With(slog.String("service", "contact")),
		contacts: contacts,
		scores:   scores,
		profiles: profiles,
		tx:       tx,
		cfg:      cfg,
	}
}

// ImportDeviceContact normalizes a flat device record and upserts it.
// Re-importing an existing ID replaces the contact fields, but an existing
// score record is left alone: warmth and the manual value rating survive
// re-imports. A fresh contact gets the initial score
// {completeness, warmth 0, value 3}.
func (s *Service) ImportDeviceContact(ctx context.Context, dc domain.DeviceContact) (domain.Contact, error) {
	if dc.ID == "" {
		dc.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	c := domain.NormalizeDeviceContact(dc, now)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if existing, err := s.contacts.GetByID(ctx, c.ID); err == nil {
			c.CreatedAt = existing.CreatedAt
			c.LastInteractionAt = existing.LastInteractionAt
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := s.contacts.Upsert(ctx, c); err != nil {
			return err
		}

		if _, err := s.scores.Get(ctx, c.ID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return s.scores.Upsert(ctx, domain.Score{
				ContactID:    c.ID,
				Completeness: scoring.Completeness(c),
				Warmth:       0,
				ValueScore:   domain.DefaultValueScore,
			})
		}
		return nil
	})
	if err != nil {
		return domain.Contact{}, fmt.Errorf("import device contact: %w", err)
	}

	s.log.Info("contact imported", slog.String("contact_id", c.ID))
	return c, nil
}

// Update replaces a contact's fields wholesale, bumps updated_at, and
// recomputes completeness. Warmth and the manual value rating are
// preserved.
func (s *Service) Update(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	if c.ID == "" {
		return domain.Contact{}, domain.NewValidationError("id", "must not be empty")
	}

	c.UpdatedAt = time.Now().UTC()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.contacts.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		c.CreatedAt = existing.CreatedAt
		c.LastInteractionAt = existing.LastInteractionAt

		if err := s.contacts.Upsert(ctx, c); err != nil {
			return err
		}
		return s.refreshCompleteness(ctx, c)
	})
	if err != nil {
		return domain.Contact{}, fmt.Errorf("update contact %s: %w", c.ID, err)
	}
	return c, nil
}

// ProfileDiff is a set of scraped fields the user accepted, plus the
// profile link they came from.
type ProfileDiff struct {
	Source       domain.ProfileSource
	URL          string
	FirstName    *string
	LastName     *string
	Organization *string
	Position     *string
	PhotoURI     *string
}

// ApplyProfileDiff merges accepted scraped fields into the contact,
// records the profile link with the raw fields cached as JSON, and
// recomputes completeness. One transaction covers all three stores.
func (s *Service) ApplyProfileDiff(ctx context.Context, contactID string, diff ProfileDiff) (domain.Contact, error) {
	if !diff.Source.IsValid() {
		return domain.Contact{}, domain.NewValidationError("source", "unknown profile source")
	}
	if diff.URL == "" {
		return domain.Contact{}, domain.NewValidationError("url", "must not be empty")
	}

	now := time.Now().UTC()
	var updated domain.Contact

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.contacts.GetByID(ctx, contactID)
		if err != nil {
			return err
		}

		if diff.FirstName != nil {
			c.FirstName = *diff.FirstName
		}
		if diff.LastName != nil {
			c.LastName = *diff.LastName
		}
		if diff.Organization != nil {
			c.Organization = diff.Organization
		}
		if diff.Position != nil {
			c.Position = diff.Position
		}
		if diff.PhotoURI != nil {
			c.PhotoURI = diff.PhotoURI
		}
		c.UpdatedAt = now

		if err := s.contacts.Upsert(ctx, c); err != nil {
			return err
		}

		fields, err := json.Marshal(diff)
		if err != nil {
			return fmt.Errorf("marshal profile fields: %w", err)
		}
		profile := domain.SocialProfile{
			ID:         uuid.NewString(),
			ContactID:  contactID,
			Source:     diff.Source,
			URL:        diff.URL,
			FieldsJSON: string(fields),
			AddedAt:    now,
		}
		if err := s.profiles.Upsert(ctx, profile); err != nil {
			return err
		}

		if err := s.refreshCompleteness(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return domain.Contact{}, fmt.Errorf("apply profile diff to %s: %w", contactID, err)
	}

	s.log.Info("profile diff applied",
		slog.String("contact_id", contactID),
		slog.String("source", diff.Source.String()),
	)
	return updated, nil
}

// SetValueScore sets the manual 1..5 rating on a contact's score record.
func (s *Service) SetValueScore(ctx context.Context, contactID string, value int) error {
	if value < 1 || value > 5 {
		return domain.NewValidationError("value_score", "must be between 1 and 5")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.contacts.GetByID(ctx, contactID)
		if err != nil {
			return err
		}

		score, err := s.scores.Get(ctx, contactID)
		if errors.Is(err, domain.ErrNotFound) {
			score = domain.Score{
				ContactID:    contactID,
				Completeness: scoring.Completeness(c),
			}
		} else if err != nil {
			return err
		}
		score.ValueScore = value
		return s.scores.Upsert(ctx, score)
	})
	if err != nil {
		return fmt.Errorf("set value score for %s: %w", contactID, err)
	}
	return nil
}

// Search finds contacts by a case-insensitive substring over the name and
// organization. An empty query lists contacts up to the limit; a
// non-positive limit falls back to the configured cap.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Contact, error) {
	if limit <= 0 || limit > s.cfg.SearchLimit {
		limit = s.cfg.SearchLimit
	}
	return s.contacts.Search(ctx, query, limit)
}

// Profiles lists the social profiles linked to a contact.
func (s *Service) Profiles(ctx context.Context, contactID string) ([]domain.SocialProfile, error) {
	return s.profiles.ListByContact(ctx, contactID)
}

// refreshCompleteness recomputes completeness from the contact's current
// fields, preserving warmth and the manual value rating.
func (s *Service) refreshCompleteness(ctx context.Context, c domain.Contact) error {
	score, err := s.scores.Get(ctx, c.ID)
	if errors.Is(err, domain.ErrNotFound) {
		score = domain.Score{
			ContactID:  c.ID,
			Warmth:     0,
			ValueScore: domain.DefaultValueScore,
		}
	} else if err != nil {
		return err
	}
	score.Completeness = scoring.Completeness(c)
	return s.scores.Upsert(ctx, score)
}
