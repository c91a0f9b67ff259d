// Package contact implements the contact record store on SQLite.
package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

var columns = []string{
	"id", "first_name", "last_name", "middle_name", "phones", "emails",
	"organization", "position", "birthday", "photo_uri", "notes", "tags",
	"created_at", "updated_at", "last_interaction_at",
}

// Repo provides contact persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new contact repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type contactRow struct {
	ID                string  `db:"id"`
	FirstName         string  `db:"first_name"`
	LastName          string  `db:"last_name"`
	MiddleName        *string `db:"middle_name"`
	Phones            string  `db:"phones"`
	Emails            string  `db:"emails"`
	Organization      *string `db:"organization"`
	Position          *string `db:"position"`
	Birthday          *string `db:"birthday"`
	PhotoURI          *string `db:"photo_uri"`
	Notes             *string `db:"notes"`
	Tags              string  `db:"tags"`
	CreatedAt         string  `db:"created_at"`
	UpdatedAt         string  `db:"updated_at"`
	LastInteractionAt *string `db:"last_interaction_at"`
}

// GetByID returns a contact by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	query, args, err := sq.Select(columns...).
		From("contacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Contact{}, fmt.Errorf("build query: %w", err)
	}

	var row contactRow
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &row, query, args...); err != nil {
		return domain.Contact{}, sqlite.MapError(err, "contact", id)
	}

	return toDomain(row)
}

// Upsert writes a contact wholesale: insert when the ID is new, full replace
// otherwise. The caller owns updated_at.
func (r *Repo) Upsert(ctx context.Context, c domain.Contact) error {
	query, args, err := sq.Insert("contacts").
		Columns(columns...).
		Values(
			c.ID, c.FirstName, c.LastName, c.MiddleName,
			marshalList(c.Phones), marshalList(c.Emails),
			c.Organization, c.Position, c.Birthday, c.PhotoURI, c.Notes,
			marshalList(c.Tags),
			sqlite.FormatTime(c.CreatedAt), sqlite.FormatTime(c.UpdatedAt),
			sqlite.FormatTimePtr(c.LastInteractionAt),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			middle_name = excluded.middle_name,
			phones = excluded.phones,
			emails = excluded.emails,
			organization = excluded.organization,
			position = excluded.position,
			birthday = excluded.birthday,
			photo_uri = excluded.photo_uri,
			notes = excluded.notes,
			tags = excluded.tags,
			updated_at = excluded.updated_at,
			last_interaction_at = excluded.last_interaction_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "contact", c.ID)
	}
	return nil
}

// Search returns up to limit contacts whose "first last organization" string
// contains the query, case-insensitively. An empty query matches everyone.
// SQLite's LIKE folds case for ASCII only, so matching happens here where
// Cyrillic names fold correctly.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Contact, error) {
	sqlStr, args, err := sq.Select(columns...).
		From("contacts").
		OrderBy("last_name", "first_name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []contactRow
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &rows, sqlStr, args...); err != nil {
		return nil, sqlite.MapError(err, "contact", "")
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Contact, 0, min(limit, len(rows)))
	for _, row := range rows {
		if len(out) >= limit {
			break
		}
		if needle != "" {
			hay := row.FirstName + " " + row.LastName
			if row.Organization != nil {
				hay += " " + *row.Organization
			}
			if !strings.Contains(strings.ToLower(hay), needle) {
				continue
			}
		}
		c, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// SetLastInteraction stamps the contact's last interaction moment and bumps
// updated_at in the same statement.
func (r *Repo) SetLastInteraction(ctx context.Context, id string, at, updatedAt time.Time) error {
	query, args, err := sq.Update("contacts").
		Set("last_interaction_at", sqlite.FormatTime(at)).
		Set("updated_at", sqlite.FormatTime(updatedAt)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "contact", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toDomain(row contactRow) (domain.Contact, error) {
	createdAt, err := sqlite.ParseTime(row.CreatedAt)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("parse contact %s created_at: %w", row.ID, err)
	}
	updatedAt, err := sqlite.ParseTime(row.UpdatedAt)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("parse contact %s updated_at: %w", row.ID, err)
	}
	lastAt, err := sqlite.ParseTimePtr(row.LastInteractionAt)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("parse contact %s last_interaction_at: %w", row.ID, err)
	}

	phones, err := unmarshalList(row.Phones)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("parse contact %s phones: %w", row.ID, err)
	}
	emails, err := unmarshalList(row.Emails)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("parse contact %s emails: %w", row.ID, err)
	}
	tags, err := unmarshalList(row.Tags)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("parse contact %s tags: %w", row.ID, err)
	}

	return domain.Contact{
		ID:                row.ID,
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		MiddleName:        row.MiddleName,
		Phones:            phones,
		Emails:            emails,
		Organization:      row.Organization,
		Position:          row.Position,
		Birthday:          row.Birthday,
		PhotoURI:          row.PhotoURI,
		Notes:             row.Notes,
		Tags:              tags,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
		LastInteractionAt: lastAt,
	}, nil
}

// marshalList renders a string slice as a JSON array; nil becomes "[]".
func marshalList(vals []string) string {
	if len(vals) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(vals)
	return string(b)
}

func unmarshalList(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
