// Package interaction implements the log-interaction saga: one transaction
// that records the interaction, stamps the contact, folds the event into
// the warmth score, and optionally schedules a reminder.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/internal/domain"
	"github.com/socialcapital-app/backend/internal/service/scoring"
)

//go:generate moq -out mocks_moq_test.go . InteractionRepo ContactRepo ScoreRepo ReminderRepo TxManager

// InteractionRepo is the interaction store surface this service needs.
type InteractionRepo interface {
	Create(ctx context.Context, in domain.Interaction) error
	Update(ctx context.Context, in domain.Interaction) error
	ListByContact(ctx context.Context, contactID string, limit, offset int) ([]domain.Interaction, error)
}

// ContactRepo is the contact store surface this service needs.
type ContactRepo interface {
	GetByID(ctx context.Context, id string) (domain.Contact, error)
	SetLastInteraction(ctx context.Context, id string, at, updatedAt time.Time) error
}

// ScoreRepo is the score store surface this service needs.
type ScoreRepo interface {
	Get(ctx context.Context, contactID string) (domain.Score, error)
	Upsert(ctx context.Context, s domain.Score) error
}

// ReminderRepo is the reminder store surface this service needs.
type ReminderRepo interface {
	Upsert(ctx context.Context, r domain.Reminder) error
}

// TxManager runs a function inside one storage transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the interaction use cases.
type Service struct {
	log          *slog.Logger
	interactions InteractionRepo
	contacts     ContactRepo
	scores       ScoreRepo
	reminders    ReminderRepo
	tx           TxManager
	cfg          config.ScoringConfig
}

// New creates the interaction service.
func New(
	log *slog.Logger,
	interactions InteractionRepo,
	contacts ContactRepo,
	scores ScoreRepo,
	reminders ReminderRepo,
	tx TxManager,
	cfg config.ScoringConfig,
) *Service {
	return &Service{
		log:          log.With(slog.String("service", "interaction")),
		interactions: interactions,
		contacts:     contacts,
		scores:       scores,
		reminders:    reminders,
		tx:           tx,
		cfg:          cfg,
	}
}

// LogInput describes one interaction to record.
type LogInput struct {
	ContactID       string
	OccurredAt      time.Time // zero value means now
	Channel         domain.Channel
	ChannelNote     *string
	DurationMinutes *int
	Summary         *string
	Usefulness      *int // 1..5
	KeepInTouch     bool
	AllyPotential   bool
	NextStep        *string
	NextStepDue     *time.Time
	NextStepDone    bool

	// CreateReminder schedules a reminder alongside the interaction. Due
	// at NextStepDue when set, else OccurredAt plus ReminderAfterHours,
	// else OccurredAt itself.
	CreateReminder     bool
	ReminderAfterHours *int
}

// Log records one interaction and updates everything derived from it in a
// single transaction.
func (s *Service) Log(ctx context.Context, in LogInput) (domain.Interaction, error) {
	if err := s.validate(in); err != nil {
		return domain.Interaction{}, err
	}

	now := time.Now().UTC()
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	occurredAt = occurredAt.UTC()

	interaction := domain.Interaction{
		ID:              uuid.NewString(),
		ContactID:       in.ContactID,
		OccurredAt:      occurredAt,
		Channel:         in.Channel,
		ChannelNote:     in.ChannelNote,
		DurationMinutes: in.DurationMinutes,
		Summary:         in.Summary,
		Usefulness:      in.Usefulness,
		KeepInTouch:     in.KeepInTouch,
		AllyPotential:   in.AllyPotential,
		NextStep:        in.NextStep,
		NextStepDue:     in.NextStepDue,
		NextStepDone:    in.NextStepDone,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		contact, err := s.contacts.GetByID(ctx, in.ContactID)
		if err != nil {
			return err
		}

		if err := s.interactions.Create(ctx, interaction); err != nil {
			return err
		}
		if err := s.contacts.SetLastInteraction(ctx, contact.ID, occurredAt, now); err != nil {
			return err
		}
		if err := s.updateScore(ctx, contact, interaction, now); err != nil {
			return err
		}

		if in.CreateReminder {
			if err := s.reminders.Upsert(ctx, s.buildReminder(in, occurredAt)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("log interaction for %s: %w", in.ContactID, err)
	}

	s.log.Info("interaction logged",
		slog.String("contact_id", in.ContactID),
		slog.String("channel", in.Channel.String()),
	)
	return interaction, nil
}

// Update replaces the mutable fields of an existing interaction. Scores
// are not recomputed: warmth folds interactions in as they are logged, not
// retroactively.
func (s *Service) Update(ctx context.Context, in domain.Interaction) error {
	if !in.Channel.IsValid() {
		return domain.NewValidationError("channel", "unknown channel")
	}
	if err := s.interactions.Update(ctx, in); err != nil {
		return fmt.Errorf("update interaction %s: %w", in.ID, err)
	}
	return nil
}

// ListByContact returns a contact's interactions, newest first.
func (s *Service) ListByContact(ctx context.Context, contactID string, limit, offset int) ([]domain.Interaction, error) {
	return s.interactions.ListByContact(ctx, contactID, limit, offset)
}

func (s *Service) validate(in LogInput) error {
	if in.ContactID == "" {
		return domain.NewValidationError("contact_id", "must not be empty")
	}
	if !in.Channel.IsValid() {
		return domain.NewValidationError("channel", "unknown channel")
	}
	if in.Usefulness != nil && (*in.Usefulness < 1 || *in.Usefulness > 5) {
		return domain.NewValidationError("usefulness", "must be between 1 and 5")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return domain.NewValidationError("duration_minutes", "must be positive")
	}
	return nil
}

func (s *Service) updateScore(ctx context.Context, contact domain.Contact, in domain.Interaction, now time.Time) error {
	score, err := s.scores.Get(ctx, contact.ID)
	if errors.Is(err, domain.ErrNotFound) {
		score = domain.Score{ContactID: contact.ID, ValueScore: domain.DefaultValueScore}
	} else if err != nil {
		return err
	}

	summary := ""
	if in.Summary != nil {
		summary = *in.Summary
	}
	ev := scoring.InteractionEvent{
		Channel:      in.Channel,
		OccurredAt:   in.OccurredAt.Format(time.RFC3339),
		Summary:      summary,
		NextStepDone: in.NextStepDone,
	}

	score.Completeness = scoring.Completeness(contact)
	score.Warmth = scoring.ApplyInteractionTau(
		float64(score.Warmth), ev, now.Format(time.RFC3339), s.cfg.WarmthTauDays,
	)
	return s.scores.Upsert(ctx, score)
}

func (s *Service) buildReminder(in LogInput, occurredAt time.Time) domain.Reminder {
	dueAt := occurredAt
	switch {
	case in.NextStepDue != nil:
		dueAt = in.NextStepDue.UTC()
	case in.ReminderAfterHours != nil && *in.ReminderAfterHours > 0:
		dueAt = occurredAt.Add(time.Duration(*in.ReminderAfterHours) * time.Hour)
	case s.cfg.ReminderAfterHours > 0:
		dueAt = occurredAt.Add(time.Duration(s.cfg.ReminderAfterHours) * time.Hour)
	}

	title := "Напоминание"
	remType := domain.ReminderTypeFollowup
	if in.NextStep != nil && *in.NextStep != "" {
		title = *in.NextStep
		remType = domain.ReminderTypeNextStep
	}

	contactID := in.ContactID
	return domain.Reminder{
		ID:        uuid.NewString(),
		ContactID: &contactID,
		Title:     title,
		Type:      remType,
		DueAt:     dueAt,
		Done:      false,
	}
}
