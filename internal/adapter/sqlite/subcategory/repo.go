// Package subcategory implements the subcategory record store on SQLite.
package subcategory

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

var columns = []string{"id", "category_id", "name", "sort_order", "created_at", "updated_at"}

// Repo provides subcategory persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new subcategory repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type subcategoryRow struct {
	ID         string `db:"id"`
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	SortOrder  *int   `db:"sort_order"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

// GetByID returns a subcategory by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Subcategory, error) {
	query, args, err := sq.Select(columns...).
		From("subcategories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Subcategory{}, fmt.Errorf("build query: %w", err)
	}

	var row subcategoryRow
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &row, query, args...); err != nil {
		return domain.Subcategory{}, sqlite.MapError(err, "subcategory", id)
	}
	return toDomain(row)
}

// ListByCategory returns a category's subcategories ordered by sort_order
// (NULLs last), then name.
func (r *Repo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	query, args, err := sq.Select(columns...).
		From("subcategories").
		Where(sq.Eq{"category_id": categoryID}).
		OrderBy("sort_order IS NULL", "sort_order", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []subcategoryRow
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, "subcategory", categoryID)
	}

	out := make([]domain.Subcategory, 0, len(rows))
	for _, row := range rows {
		s, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Upsert writes a subcategory wholesale, keyed by ID.
func (r *Repo) Upsert(ctx context.Context, s domain.Subcategory) error {
	query, args, err := sq.Insert("subcategories").
		Columns(columns...).
		Values(
			s.ID, s.CategoryID, s.Name, s.SortOrder,
			sqlite.FormatTime(s.CreatedAt), sqlite.FormatTime(s.UpdatedAt),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			category_id = excluded.category_id,
			name = excluded.name,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "subcategory", s.ID)
	}
	return nil
}

// Delete removes a subcategory row. Link cleanup belongs to the taxonomy
// service cascade.
func (r *Repo) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("subcategories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "subcategory", id)
	}
	return nil
}

// DeleteByCategory removes every subcategory of a category.
func (r *Repo) DeleteByCategory(ctx context.Context, categoryID string) error {
	query, args, err := sq.Delete("subcategories").Where(sq.Eq{"category_id": categoryID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "subcategory", categoryID)
	}
	return nil
}

func toDomain(row subcategoryRow) (domain.Subcategory, error) {
	createdAt, err := sqlite.ParseTime(row.CreatedAt)
	if err != nil {
		return domain.Subcategory{}, fmt.Errorf("parse subcategory %s created_at: %w", row.ID, err)
	}
	updatedAt, err := sqlite.ParseTime(row.UpdatedAt)
	if err != nil {
		return domain.Subcategory{}, fmt.Errorf("parse subcategory %s updated_at: %w", row.ID, err)
	}
	return domain.Subcategory{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Name:       row.Name,
		SortOrder:  row.SortOrder,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}
