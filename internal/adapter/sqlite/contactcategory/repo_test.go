package contactcategory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite/testhelper"
)

func TestRepo_AddIsIdempotent(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, repo.Add(ctx, "c1", "cat1"))
	}

	n, err := repo.Count(ctx, "cat1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.ListContacts(ctx, "cat1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, got)
}

func TestRepo_Remove(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "c1", "cat1"))
	require.NoError(t, repo.Add(ctx, "c1", "cat2"))

	require.NoError(t, repo.Remove(ctx, "c1", "cat1"))
	// Removing an absent pair is a no-op.
	require.NoError(t, repo.Remove(ctx, "c1", "cat1"))

	cats, err := repo.ListByContact(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat2"}, cats)
}

func TestRepo_ListContacts_OrderAndPagination(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	for _, id := range []string{"c3", "c1", "c4", "c2"} {
		require.NoError(t, repo.Add(ctx, id, "cat1"))
	}

	all, err := repo.ListContacts(ctx, "cat1", 0, 0)
	require.NoError(t, err)
	// Insertion order, not lexical order.
	assert.Equal(t, []string{"c3", "c1", "c4", "c2"}, all)

	page, err := repo.ListContacts(ctx, "cat1", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c4"}, page)

	tail, err := repo.ListContacts(ctx, "cat1", 10, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, tail)
}

func TestRepo_AssignedContactIDs(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "c1", "cat1"))
	require.NoError(t, repo.Add(ctx, "c1", "cat2"))
	require.NoError(t, repo.Add(ctx, "c2", "cat1"))

	got, err := repo.AssignedContactIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, got)
}

func TestRepo_DeleteByCategory(t *testing.T) {
	t.Parallel()
	db := testhelper.NewDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "c1", "cat1"))
	require.NoError(t, repo.Add(ctx, "c2", "cat1"))
	require.NoError(t, repo.Add(ctx, "c1", "cat2"))

	require.NoError(t, repo.DeleteByCategory(ctx, "cat1"))

	n, err := repo.Count(ctx, "cat1")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Count(ctx, "cat2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
