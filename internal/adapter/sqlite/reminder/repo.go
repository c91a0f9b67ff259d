// Package reminder implements the reminder record store on SQLite.
package reminder

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

var columns = []string{"id", "contact_id", "title", "type", "due_at", "done"}

// Repo provides reminder persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new reminder repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type reminderRow struct {
	ID        string  `db:"id"`
	ContactID *string `db:"contact_id"`
	Title     string  `db:"title"`
	Type      string  `db:"type"`
	DueAt     string  `db:"due_at"`
	Done      bool    `db:"done"`
}

// ListByContact returns every reminder tied to a contact, soonest due first.
func (r *Repo) ListByContact(ctx context.Context, contactID string) ([]domain.Reminder, error) {
	query, args, err := sq.Select(columns...).
		From("reminders").
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("due_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.list(ctx, query, args)
}

// ListDue returns undone reminders due strictly before the given moment,
// soonest first.
func (r *Repo) ListDue(ctx context.Context, before time.Time) ([]domain.Reminder, error) {
	query, args, err := sq.Select(columns...).
		From("reminders").
		Where(sq.Lt{"due_at": sqlite.FormatTime(before)}).
		Where(sq.Eq{"done": false}).
		OrderBy("due_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.list(ctx, query, args)
}

// Upsert writes a reminder wholesale, keyed by ID.
func (r *Repo) Upsert(ctx context.Context, rem domain.Reminder) error {
	query, args, err := sq.Insert("reminders").
		Columns(columns...).
		Values(
			rem.ID, rem.ContactID, rem.Title, rem.Type.String(),
			sqlite.FormatTime(rem.DueAt), rem.Done,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			contact_id = excluded.contact_id,
			title = excluded.title,
			type = excluded.type,
			due_at = excluded.due_at,
			done = excluded.done`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "reminder", rem.ID)
	}
	return nil
}

// MarkDone sets the done flag. Marking an already-done reminder is a no-op;
// a missing reminder is ErrNotFound.
func (r *Repo) MarkDone(ctx context.Context, id string) error {
	query, args, err := sq.Update("reminders").
		Set("done", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "reminder", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("reminder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, query string, args []any) ([]domain.Reminder, error) {
	var rows []reminderRow
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, "reminder", "")
	}

	out := make([]domain.Reminder, 0, len(rows))
	for _, row := range rows {
		rem, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, nil
}

func toDomain(row reminderRow) (domain.Reminder, error) {
	dueAt, err := sqlite.ParseTime(row.DueAt)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("parse reminder %s due_at: %w", row.ID, err)
	}
	return domain.Reminder{
		ID:        row.ID,
		ContactID: row.ContactID,
		Title:     row.Title,
		Type:      domain.ReminderType(row.Type),
		DueAt:     dueAt,
		Done:      row.Done,
	}, nil
}
