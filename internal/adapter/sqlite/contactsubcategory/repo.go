// Package contactsubcategory implements the contact<->subcategory relation
// store on SQLite, mirroring the contact-category relation: unique
// (contact_id, subcategory_id) pair, idempotent Add via ON CONFLICT DO
// NOTHING, delete-all Remove.
package contactsubcategory

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
)

var columns = []string{"id", "contact_id", "subcategory_id", "created_at"}

// Repo provides contact-subcategory relation persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new contact-subcategory relation repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

// Add links a contact to a subcategory. Adding an existing pair is a no-op.
func (r *Repo) Add(ctx context.Context, contactID, subcategoryID string) error {
	query, args, err := sq.Insert("contact_subcategories").
		Columns(columns...).
		Values(uuid.NewString(), contactID, subcategoryID,
			sqlite.FormatTime(time.Now().UTC())).
		Suffix("ON CONFLICT (contact_id, subcategory_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_subcategory", contactID)
	}
	return nil
}

// Remove deletes every row matching the pair.
func (r *Repo) Remove(ctx context.Context, contactID, subcategoryID string) error {
	query, args, err := sq.Delete("contact_subcategories").
		Where(sq.Eq{"contact_id": contactID, "subcategory_id": subcategoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_subcategory", contactID)
	}
	return nil
}

// ListByContact returns the subcategory IDs a contact belongs to, in the
// order the links were made.
func (r *Repo) ListByContact(ctx context.Context, contactID string) ([]string, error) {
	query, args, err := sq.Select("subcategory_id").
		From("contact_subcategories").
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []string
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &ids, query, args...); err != nil {
		return nil, sqlite.MapError(err, "contact_subcategory", contactID)
	}
	return ids, nil
}

// ListContacts returns the contact IDs in a subcategory, insertion-ordered
// and deduplicated, paginated by limit/offset with unique-count semantics.
func (r *Repo) ListContacts(ctx context.Context, subcategoryID string, limit, offset int) ([]string, error) {
	// rowid keeps insertion order exact even when created_at collides
	// within one millisecond.
	query, args, err := sq.Select("contact_id").
		From("contact_subcategories").
		Where(sq.Eq{"subcategory_id": subcategoryID}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var raw []string
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &raw, query, args...); err != nil {
		return nil, sqlite.MapError(err, "contact_subcategory", subcategoryID)
	}

	seen := make(map[string]struct{}, len(raw))
	skipped := 0
	out := make([]string, 0, min(limit, len(raw)))
	for _, id := range raw {
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
	return out, nil
}

// Count returns the exact number of distinct contacts in a subcategory.
func (r *Repo) Count(ctx context.Context, subcategoryID string) (int, error) {
	query, args, err := sq.Select("count(DISTINCT contact_id)").
		From("contact_subcategories").
		Where(sq.Eq{"subcategory_id": subcategoryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &n, query, args...); err != nil {
		return 0, sqlite.MapError(err, "contact_subcategory", subcategoryID)
	}
	return n, nil
}

// ContactIDsInSubcategories returns the distinct contact IDs linked to any
// of the given subcategories. An empty input returns no IDs.
func (r *Repo) ContactIDsInSubcategories(ctx context.Context, subcategoryIDs []string) ([]string, error) {
	if len(subcategoryIDs) == 0 {
		return []string{}, nil
	}

	query, args, err := sq.Select("DISTINCT contact_id").
		From("contact_subcategories").
		Where(sq.Eq{"subcategory_id": subcategoryIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []string
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &ids, query, args...); err != nil {
		return nil, sqlite.MapError(err, "contact_subcategory", "")
	}
	return ids, nil
}

// DeleteBySubcategory removes every link into a subcategory.
func (r *Repo) DeleteBySubcategory(ctx context.Context, subcategoryID string) error {
	query, args, err := sq.Delete("contact_subcategories").
		Where(sq.Eq{"subcategory_id": subcategoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_subcategory", subcategoryID)
	}
	return nil
}

// DeleteBySubcategories removes every link into any of the given
// subcategories. Used by the category-delete cascade.
func (r *Repo) DeleteBySubcategories(ctx context.Context, subcategoryIDs []string) error {
	if len(subcategoryIDs) == 0 {
		return nil
	}
	query, args, err := sq.Delete("contact_subcategories").
		Where(sq.Eq{"subcategory_id": subcategoryIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact_subcategory", "")
	}
	return nil
}
