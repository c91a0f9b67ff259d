// Package profile implements the social-profile record store on SQLite.
package profile

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

var columns = []string{
	"id", "contact_id", "source", "url", "fields_json", "added_at", "last_checked_at",
}

// Repo provides social-profile persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new profile repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type profileRow struct {
	ID            string  `db:"id"`
	ContactID     string  `db:"contact_id"`
	Source        string  `db:"source"`
	URL           string  `db:"url"`
	FieldsJSON    string  `db:"fields_json"`
	AddedAt       string  `db:"added_at"`
	LastCheckedAt *string `db:"last_checked_at"`
}

// ListByContact returns every profile linked to a contact, oldest first.
// Profiles are not deduplicated by URL.
func (r *Repo) ListByContact(ctx context.Context, contactID string) ([]domain.SocialProfile, error) {
	query, args, err := sq.Select(columns...).
		From("profiles").
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("added_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []profileRow
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, "profile", contactID)
	}

	out := make([]domain.SocialProfile, 0, len(rows))
	for _, row := range rows {
		p, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Upsert writes a profile wholesale, keyed by ID.
func (r *Repo) Upsert(ctx context.Context, p domain.SocialProfile) error {
	query, args, err := sq.Insert("profiles").
		Columns(columns...).
		Values(
			p.ID, p.ContactID, p.Source.String(), p.URL, p.FieldsJSON,
			sqlite.FormatTime(p.AddedAt), sqlite.FormatTimePtr(p.LastCheckedAt),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			contact_id = excluded.contact_id,
			source = excluded.source,
			url = excluded.url,
			fields_json = excluded.fields_json,
			last_checked_at = excluded.last_checked_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "profile", p.ID)
	}
	return nil
}

// Delete removes a profile by ID. Deleting a missing profile is a no-op.
func (r *Repo) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("profiles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "profile", id)
	}
	return nil
}

func toDomain(row profileRow) (domain.SocialProfile, error) {
	addedAt, err := sqlite.ParseTime(row.AddedAt)
	if err != nil {
		return domain.SocialProfile{}, fmt.Errorf("parse profile %s added_at: %w", row.ID, err)
	}
	checkedAt, err := sqlite.ParseTimePtr(row.LastCheckedAt)
	if err != nil {
		return domain.SocialProfile{}, fmt.Errorf("parse profile %s last_checked_at: %w", row.ID, err)
	}

	return domain.SocialProfile{
		ID:            row.ID,
		ContactID:     row.ContactID,
		Source:        domain.ProfileSource(row.Source),
		URL:           row.URL,
		FieldsJSON:    row.FieldsJSON,
		AddedAt:       addedAt,
		LastCheckedAt: checkedAt,
	}, nil
}
