package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite/testhelper"
	"github.com/socialcapital-app/backend/internal/domain"
)

func newInteraction(id, contactID string, occurredAt time.Time) domain.Interaction {
	return domain.Interaction{
		ID:         id,
		ContactID:  contactID,
		OccurredAt: occurredAt,
		Channel:    domain.ChannelCall,
	}
}

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	summary := "discussed the project"
	minutes := 45
	due := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	in := newInteraction("i1", "c1", time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))
	in.Summary = &summary
	in.DurationMinutes = &minutes
	in.KeepInTouch = true
	in.NextStepDue = &due

	require.NoError(t, repo.Create(ctx, in))

	got, err := repo.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelCall, got.Channel)
	assert.Equal(t, "discussed the project", *got.Summary)
	assert.Equal(t, 45, *got.DurationMinutes)
	assert.True(t, got.KeepInTouch)
	assert.True(t, got.NextStepDue.Equal(due))
	assert.True(t, got.OccurredAt.Equal(in.OccurredAt))

	// Duplicate ID violates the primary key.
	err = repo.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	in := newInteraction("i1", "c1", time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, in))

	in.NextStepDone = true
	in.Channel = domain.ChannelMeeting
	require.NoError(t, repo.Update(ctx, in))

	got, err := repo.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, got.NextStepDone)
	assert.Equal(t, domain.ChannelMeeting, got.Channel)

	missing := newInteraction("nope", "c1", time.Now().UTC())
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrNotFound)
}

func TestRepo_ListByContact_OrderAndPagination(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Insert out of chronological order on purpose.
	for _, spec := range []struct {
		id   string
		days int
	}{
		{"i2", 2}, {"i1", 1}, {"i4", 4}, {"i3", 3},
	} {
		in := newInteraction(spec.id, "c1", base.AddDate(0, 0, spec.days))
		require.NoError(t, repo.Create(ctx, in))
	}
	// Another contact's interaction must not leak in.
	require.NoError(t, repo.Create(ctx, newInteraction("other", "c2", base)))

	all, err := repo.ListByContact(ctx, "c1", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"i4", "i3", "i2", "i1"}, ids(all))

	page, err := repo.ListByContact(ctx, "c1", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"i3", "i2"}, ids(page))

	empty, err := repo.ListByContact(ctx, "c1", 10, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func ids(ins []domain.Interaction) []string {
	out := make([]string, 0, len(ins))
	for _, in := range ins {
		out = append(out, in.ID)
	}
	return out
}
