// Package history implements the HistoryEntry repository using PostgreSQL.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"id", "user_id", "topic", "cards", "settings", "created_at"}

// Repo provides history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new history entry.
func (r *Repo) Create(ctx context.Context, e *domain.HistoryEntry) error {
	cards, err := json.Marshal(e.Cards)
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}
	settings, err := json.Marshal(e.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	sql, args, err := psql.Insert("history_entries").
		Columns(columns...).
		Values(e.ID, e.UserID, e.Topic, cards, settings, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "history_entry", e.ID)
	}

	return nil
}

// ListByUser returns all history entries owned by userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error) {
	sql, args, err := psql.Select(columns...).
		From("history_entries").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list history for %s: %w", userID, err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var (
			e           domain.HistoryEntry
			cardsRaw    []byte
			settingsRaw []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Topic, &cardsRaw, &settingsRaw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if err := json.Unmarshal(cardsRaw, &e.Cards); err != nil {
			return nil, fmt.Errorf("unmarshal cards for %s: %w", e.ID, err)
		}
		if err := json.Unmarshal(settingsRaw, &e.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history for %s: %w", userID, err)
	}

	return entries, nil
}

// DeleteByIDs removes exactly the given entries scoped to userID.
// Returns domain.ErrNotFound if any id does not belong to the user, so a
// surrounding transaction can roll the whole batch back.
func (r *Repo) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := psql.Delete("history_entries").
		Where(squirrel.Eq{"user_id": userID, "id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "history_entry", uuid.Nil)
	}

	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("batch delete history: %d of %d rows: %w",
			tag.RowsAffected(), len(ids), domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByUser removes every history entry owned by userID.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	sql, args, err := psql.Delete("history_entries").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "history_entry", uuid.Nil)
	}

	return nil
}
