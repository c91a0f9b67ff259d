// Package score implements the score record store on SQLite. At most one
// row exists per contact; the contact ID is the primary key.
package score

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

// Repo provides score persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new score repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type scoreRow struct {
	ContactID    string `db:"contact_id"`
	Completeness int    `db:"completeness"`
	Warmth       int    `db:"warmth"`
	ValueScore   int    `db:"value_score"`
}

// Get returns the score record for a contact, ErrNotFound when none exists.
func (r *Repo) Get(ctx context.Context, contactID string) (domain.Score, error) {
	query, args, err := sq.Select("contact_id", "completeness", "warmth", "value_score").
		From("scores").
		Where(sq.Eq{"contact_id": contactID}).
		ToSql()
	if err != nil {
		return domain.Score{}, fmt.Errorf("build query: %w", err)
	}

	var row scoreRow
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &row, query, args...); err != nil {
		return domain.Score{}, sqlite.MapError(err, "score", contactID)
	}

	return domain.Score(row), nil
}

// Upsert writes the score record wholesale.
func (r *Repo) Upsert(ctx context.Context, s domain.Score) error {
	query, args, err := sq.Insert("scores").
		Columns("contact_id", "completeness", "warmth", "value_score").
		Values(s.ContactID, s.Completeness, s.Warmth, s.ValueScore).
		Suffix(`ON CONFLICT (contact_id) DO UPDATE SET
			completeness = excluded.completeness,
			warmth = excluded.warmth,
			value_score = excluded.value_score`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "score", s.ContactID)
	}
	return nil
}
