package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite/testhelper"
	"github.com/socialcapital-app/backend/internal/domain"
)

func newReminder(id string, contactID *string, dueAt time.Time) domain.Reminder {
	return domain.Reminder{
		ID:        id,
		ContactID: contactID,
		Title:     "call back",
		Type:      domain.ReminderTypeFollowup,
		DueAt:     dueAt,
	}
}

func TestRepo_UpsertAndListByContact(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	c1 := "c1"
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, newReminder("r2", &c1, base.AddDate(0, 0, 2))))
	require.NoError(t, repo.Upsert(ctx, newReminder("r1", &c1, base)))
	// Reminder without a contact stays out of contact listings.
	require.NoError(t, repo.Upsert(ctx, newReminder("loose", nil, base)))

	got, err := repo.ListByContact(ctx, c1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID) // soonest due first
	assert.Equal(t, "r2", got[1].ID)

	// Upsert with the same ID rewrites the record.
	upd := newReminder("r1", &c1, base)
	upd.Title = "write follow-up email"
	upd.Type = domain.ReminderTypeNextStep
	require.NoError(t, repo.Upsert(ctx, upd))

	got, err = repo.ListByContact(ctx, c1)
	require.NoError(t, err)
	assert.Equal(t, "write follow-up email", got[0].Title)
	assert.Equal(t, domain.ReminderTypeNextStep, got[0].Type)
}

func TestRepo_ListDue(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	c1 := "c1"
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	overdue := newReminder("overdue", &c1, now.AddDate(0, 0, -3))
	dueSoon := newReminder("soon", &c1, now.Add(time.Hour))
	future := newReminder("future", &c1, now.AddDate(0, 1, 0))
	done := newReminder("done", &c1, now.AddDate(0, 0, -1))
	done.Done = true

	for _, r := range []domain.Reminder{overdue, dueSoon, future, done} {
		require.NoError(t, repo.Upsert(ctx, r))
	}

	got, err := repo.ListDue(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	// Done and far-future reminders are filtered out; overdue stays.
	require.Len(t, got, 2)
	assert.Equal(t, "overdue", got[0].ID)
	assert.Equal(t, "soon", got[1].ID)
}

func TestRepo_MarkDone(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	c1 := "c1"
	require.NoError(t, repo.Upsert(ctx, newReminder("r1", &c1, time.Now().UTC())))

	require.NoError(t, repo.MarkDone(ctx, "r1"))
	// Idempotent: marking again succeeds and stays done.
	require.NoError(t, repo.MarkDone(ctx, "r1"))

	got, err := repo.ListByContact(ctx, c1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Done)

	assert.ErrorIs(t, repo.MarkDone(ctx, "missing"), domain.ErrNotFound)
}
