// Package contactcategory implements the contact<->category relation store
// on SQLite. The (contact_id, category_id) pair is unique at the index
// level; Add relies on ON CONFLICT DO NOTHING so repeated or concurrent
// adds converge on a single join row.
package contactcategory

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
)

var columns = []string{"id", "contact_id", "category_id", "created_at"}

// Repo provides contact-category relation persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new contact-category relation repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

// Add links a contact to a category. Adding an existing pair is a no-op.
func (r *Repo) Add(ctx context.Context, contactID, categoryID string) error {
	query, args, err := sq.Insert("contact_categories").
		Columns(columns...).
		Values(uuid.NewString(), contactID, categoryID,
			sqlite.FormatTime(time.Now().UTC())).
		Suffix("ON CONFLICT (contact_id, category_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_category", contactID)
	}
	return nil
}

// Remove deletes every row matching the pair. The unique index keeps the
// count at one, but older files may carry duplicates, so all matches go.
func (r *Repo) Remove(ctx context.Context, contactID, categoryID string) error {
	query, args, err := sq.Delete("contact_categories").
		Where(sq.Eq{"contact_id": contactID, "category_id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_category", contactID)
	}
	return nil
}

// ListByContact returns the category IDs a contact belongs to, in the order
// the links were made.
func (r *Repo) ListByContact(ctx context.Context, contactID string) ([]string, error) {
	query, args, err := sq.Select("category_id").
		From("contact_categories").
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []string
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &ids, query, args...); err != nil {
		return nil, sqlite.MapError(err, "contact_category", contactID)
	}
	return ids, nil
}

// ListContacts returns the contact IDs in a category, insertion-ordered and
// deduplicated, paginated by limit/offset. The offset counts unique contacts
// and is applied by skipping during the scan, so duplicates in older files
// never shift a page.
func (r *Repo) ListContacts(ctx context.Context, categoryID string, limit, offset int) ([]string, error) {
	// rowid keeps insertion order exact even when created_at collides
	// within one millisecond.
	query, args, err := sq.Select("contact_id").
		From("contact_categories").
		Where(sq.Eq{"category_id": categoryID}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var raw []string
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &raw, query, args...); err != nil {
		return nil, sqlite.MapError(err, "contact_category", categoryID)
	}

	return paginateUnique(raw, limit, offset), nil
}

// Count returns the exact number of distinct contacts in a category.
func (r *Repo) Count(ctx context.Context, categoryID string) (int, error) {
	query, args, err := sq.Select("count(DISTINCT contact_id)").
		From("contact_categories").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &n, query, args...); err != nil {
		return 0, sqlite.MapError(err, "contact_category", categoryID)
	}
	return n, nil
}

// AssignedContactIDs returns the distinct contact IDs that belong to at
// least one category.
func (r *Repo) AssignedContactIDs(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT contact_id").
		From("contact_categories").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []string
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &ids, query, args...); err != nil {
		return nil, sqlite.MapError(err, "contact_category", "")
	}
	return ids, nil
}

// DeleteByCategory removes every link into a category.
func (r *Repo) DeleteByCategory(ctx context.Context, categoryID string) error {
	query, args, err := sq.Delete("contact_categories").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_category", categoryID)
	}
	return nil
}

// paginateUnique applies unique-count offset/limit pagination to an ordered
// ID stream.
func paginateUnique(ids []string, limit, offset int) []string {
	seen := make(map[string]struct{}, len(ids))
	skipped := 0
	out := make([]string, 0, min(limit, len(ids)))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, id)
	}
	return out
}
