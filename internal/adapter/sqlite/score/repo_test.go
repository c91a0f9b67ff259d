package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite/testhelper"
	"github.com/socialcapital-app/backend/internal/domain"
)

func TestRepo_GetNotFound(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_UpsertKeepsOneRowPerContact(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Score{
		ContactID: "c1", Completeness: 42, Warmth: 0, ValueScore: 3,
	}))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Completeness)
	assert.Equal(t, 3, got.ValueScore)

	// Second upsert replaces, not duplicates.
	require.NoError(t, repo.Upsert(ctx, domain.Score{
		ContactID: "c1", Completeness: 58, Warmth: 25, ValueScore: 5,
	}))

	got, err = repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 58, got.Completeness)
	assert.Equal(t, 25, got.Warmth)
	assert.Equal(t, 5, got.ValueScore)
}
