// Package category implements the category record store on SQLite.
package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

var columns = []string{"id", "name", "type", "created_at", "updated_at"}

// Repo provides category persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new category repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type categoryRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Type      string `db:"type"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// ListAll returns every category, oldest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Category, error) {
	query, args, err := sq.Select(columns...).
		From("categories").
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []categoryRow
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, "category", "")
	}

	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		c, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// GetByID returns a category by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Category, error) {
	query, args, err := sq.Select(columns...).
		From("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Category{}, fmt.Errorf("build query: %w", err)
	}

	var row categoryRow
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &row, query, args...); err != nil {
		return domain.Category{}, sqlite.MapError(err, "category", id)
	}
	return toDomain(row)
}

// Upsert writes a category wholesale, keyed by ID.
func (r *Repo) Upsert(ctx context.Context, c domain.Category) error {
	query, args, err := sq.Insert("categories").
		Columns(columns...).
		Values(
			c.ID, c.Name, c.Type.String(),
			sqlite.FormatTime(c.CreatedAt), sqlite.FormatTime(c.UpdatedAt),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "category", c.ID)
	}
	return nil
}

// Delete removes a category row. Link and subcategory cleanup belongs to the
// taxonomy service cascade, not here.
func (r *Repo) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "category", id)
	}
	return nil
}

func toDomain(row categoryRow) (domain.Category, error) {
	createdAt, err := sqlite.ParseTime(row.CreatedAt)
	if err != nil {
		return domain.Category{}, fmt.Errorf("parse category %s created_at: %w", row.ID, err)
	}
	updatedAt, err := sqlite.ParseTime(row.UpdatedAt)
	if err != nil {
		return domain.Category{}, fmt.Errorf("parse category %s updated_at: %w", row.ID, err)
	}
	return domain.Category{
		ID:        row.ID,
		Name:      row.Name,
		Type:      domain.CategoryType(row.Type),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
