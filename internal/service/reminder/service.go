// Package reminder implements reminder listing and completion. Delivery
// and alerting live outside the core; this service only reads and flips
// the stored records.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/socialcapital-app/backend/internal/domain"
)

//go:generate moq -out mocks_moq_test.go . ReminderRepo

// ReminderRepo is the reminder store surface this service needs.
type ReminderRepo interface {
	ListByContact(ctx context.Context, contactID string) ([]domain.Reminder, error)
	ListDue(ctx context.Context, before time.Time) ([]domain.Reminder, error)
	MarkDone(ctx context.Context, id string) error
}

// Service implements the reminder use cases.
type Service struct {
	log       *slog.Logger
	reminders ReminderRepo
}

// New creates the reminder service.
func New(log *slog.Logger, reminders ReminderRepo) *Service {
	return &Service{
		log:       log.With(slog.String("service", "reminder")),
		reminders: reminders,
	}
}

// ListByContact returns every reminder tied to a contact, soonest first.
func (s *Service) ListByContact(ctx context.Context, contactID string) ([]domain.Reminder, error) {
	return s.reminders.ListByContact(ctx, contactID)
}

// Upcoming returns undone reminders due within the window, overdue ones
// included, soonest first.
func (s *Service) Upcoming(ctx context.Context, now time.Time, window time.Duration) ([]domain.Reminder, error) {
	return s.reminders.ListDue(ctx, now.Add(window))
}

// MarkDone completes a reminder. Completing twice is a no-op; a missing
// reminder is ErrNotFound.
func (s *Service) MarkDone(ctx context.Context, id string) error {
	if err := s.reminders.MarkDone(ctx, id); err != nil {
		return fmt.Errorf("mark reminder %s done: %w", id, err)
	}
	s.log.Debug("reminder done", slog.String("reminder_id", id))
	return nil
}
