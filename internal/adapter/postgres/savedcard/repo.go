// Package savedcard implements the SavedCard repository using PostgreSQL.
package savedcard

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"id", "user_id", "title", "content", "topic", "color_class", "saved_at"}

// Repo provides saved-card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved-card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new saved card.
func (r *Repo) Create(ctx context.Context, c *domain.SavedCard) error {
	sql, args, err := psql.Insert("saved_cards").
		Columns(columns...).
		Values(c.ID, c.UserID, c.Title, c.Content, c.Topic, c.ColorClass, c.SavedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "saved_card", c.ID)
	}

	return nil
}

// GetByID returns a saved card by primary key scoped to userID.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.SavedCard, error) {
	sql, args, err := psql.Select(columns...).
		From("saved_cards").
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return domain.SavedCard{}, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	var c domain.SavedCard
	err = querier.QueryRow(ctx, sql, args...).
		Scan(&c.ID, &c.UserID, &c.Title, &c.Content, &c.Topic, &c.ColorClass, &c.SavedAt)
	if err != nil {
		return domain.SavedCard{}, postgres.MapError(err, "saved_card", id)
	}

	return c, nil
}

// ListByUser returns all saved cards owned by userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedCard, error) {
	sql, args, err := psql.Select(columns...).
		From("saved_cards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("saved_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list saved cards for %s: %w", userID, err)
	}
	defer rows.Close()

	cards := make([]domain.SavedCard, 0)
	for rows.Next() {
		var c domain.SavedCard
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Content, &c.Topic, &c.ColorClass, &c.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved cards for %s: %w", userID, err)
	}

	return cards, nil
}

// UpdateContent replaces title and content on an existing saved card,
// keeping its identity. Used when a card is edited in place (simplify)
// after having been saved.
func (r *Repo) UpdateContent(ctx context.Context, userID, id uuid.UUID, title, content string) error {
	sql, args, err := psql.Update("saved_cards").
		Set("title", title).
		Set("content", content).
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "saved_card", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saved_card %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByID removes one saved card scoped to userID.
func (r *Repo) DeleteByID(ctx context.Context, userID, id uuid.UUID) error {
	sql, args, err := psql.Delete("saved_cards").
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "saved_card", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saved_card %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByIDs removes exactly the given cards scoped to userID.
// Returns domain.ErrNotFound if any id does not belong to the user, so a
// surrounding transaction can roll the whole batch back.
func (r *Repo) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := psql.Delete("saved_cards").
		Where(squirrel.Eq{"user_id": userID, "id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "saved_card", uuid.Nil)
	}

	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("batch delete saved cards: %d of %d rows: %w",
			tag.RowsAffected(), len(ids), domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByUser removes every saved card owned by userID.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	sql, args, err := psql.Delete("saved_cards").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "saved_card", uuid.Nil)
	}

	return nil
}
