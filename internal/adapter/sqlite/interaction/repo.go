// Package interaction implements the interaction record store on SQLite.
package interaction

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/socialcapital-app/backend/internal/adapter/sqlite"
	"github.com/socialcapital-app/backend/internal/domain"
)

var columns = []string{
	"id", "contact_id", "occurred_at", "channel", "channel_note",
	"duration_minutes", "summary", "usefulness", "keep_in_touch",
	"ally_potential", "next_step", "next_step_due", "next_step_done",
}

// Repo provides interaction persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new interaction repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

type interactionRow struct {
	ID              string  `db:"id"`
	ContactID       string  `db:"contact_id"`
	OccurredAt      string  `db:"occurred_at"`
	Channel         string  `db:"channel"`
	ChannelNote     *string `db:"channel_note"`
	DurationMinutes *int    `db:"duration_minutes"`
	Summary         *string `db:"summary"`
	Usefulness      *int    `db:"usefulness"`
	KeepInTouch     bool    `db:"keep_in_touch"`
	AllyPotential   bool    `db:"ally_potential"`
	NextStep        *string `db:"next_step"`
	NextStepDue     *string `db:"next_step_due"`
	NextStepDone    bool    `db:"next_step_done"`
}

// Create inserts a new interaction. Duplicate IDs map to ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, in domain.Interaction) error {
	query, args, err := sq.Insert("interactions").
		Columns(columns...).
		Values(values(in)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "interaction", in.ID)
	}
	return nil
}

// Update replaces every mutable field of an existing interaction.
func (r *Repo) Update(ctx context.Context, in domain.Interaction) error {
	query, args, err := sq.Update("interactions").
		Set("contact_id", in.ContactID).
		Set("occurred_at", sqlite.FormatTime(in.OccurredAt)).
		Set("channel", in.Channel.String()).
		Set("channel_note", in.ChannelNote).
		Set("duration_minutes", in.DurationMinutes).
		Set("summary", in.Summary).
		Set("usefulness", in.Usefulness).
		Set("keep_in_touch", in.KeepInTouch).
		Set("ally_potential", in.AllyPotential).
		Set("next_step", in.NextStep).
		Set("next_step_due", sqlite.FormatTimePtr(in.NextStepDue)).
		Set("next_step_done", in.NextStepDone).
		Where(sq.Eq{"id": in.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.QuerierFromCtx(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "interaction", in.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("interaction %s: %w", in.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns an interaction by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Interaction, error) {
	query, args, err := sq.Select(columns...).
		From("interactions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("build query: %w", err)
	}

	var row interactionRow
	if err := sqlscan.Get(ctx, r.db.QuerierFromCtx(ctx), &row, query, args...); err != nil {
		return domain.Interaction{}, sqlite.MapError(err, "interaction", id)
	}
	return toDomain(row)
}

// ListByContact returns interactions for a contact, newest first, paginated.
// Timestamps are stored fixed-width so the (contact_id, occurred_at) index
// orders chronologically.
func (r *Repo) ListByContact(ctx context.Context, contactID string, limit, offset int) ([]domain.Interaction, error) {
	builder := sq.Select(columns...).
		From("interactions").
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("occurred_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []interactionRow
	if err := sqlscan.Select(ctx, r.db.QuerierFromCtx(ctx), &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, "interaction", contactID)
	}

	out := make([]domain.Interaction, 0, len(rows))
	for _, row := range rows {
		in, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func values(in domain.Interaction) []any {
	return []any{
		in.ID, in.ContactID, sqlite.FormatTime(in.OccurredAt),
		in.Channel.String(), in.ChannelNote, in.DurationMinutes, in.Summary,
		in.Usefulness, in.KeepInTouch, in.AllyPotential, in.NextStep,
		sqlite.FormatTimePtr(in.NextStepDue), in.NextStepDone,
	}
}

func toDomain(row interactionRow) (domain.Interaction, error) {
	occurredAt, err := sqlite.ParseTime(row.OccurredAt)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("parse interaction %s occurred_at: %w", row.ID, err)
	}
	nextStepDue, err := sqlite.ParseTimePtr(row.NextStepDue)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("parse interaction %s next_step_due: %w", row.ID, err)
	}

	return domain.Interaction{
		ID:              row.ID,
		ContactID:       row.ContactID,
		OccurredAt:      occurredAt,
		Channel:         domain.Channel(row.Channel),
		ChannelNote:     row.ChannelNote,
		DurationMinutes: row.DurationMinutes,
		Summary:         row.Summary,
		Usefulness:      row.Usefulness,
		KeepInTouch:     row.KeepInTouch,
		AllyPotential:   row.AllyPotential,
		NextStep:        row.NextStep,
		NextStepDue:     nextStepDue,
		NextStepDone:    row.NextStepDone,
	}, nil
}
