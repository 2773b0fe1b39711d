// Package quota implements the guest quota repository using PostgreSQL.
package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// Repo provides per-identity usage counters backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quota repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert-or-increment in one statement. The WHERE clause on the conflict
// branch means the row is left untouched once count has reached the limit,
// and the statement returns no row. Concurrent requests from the same
// identity serialize on the row, so the counter can never race past the cap.
const consumeSQL = `
INSERT INTO guest_quota (identity, count, last_active)
VALUES ($1, 1, now())
ON CONFLICT (identity) DO UPDATE
SET count = guest_quota.count + 1, last_active = now()
WHERE guest_quota.count < $2
RETURNING count`

const getSQL = `
SELECT identity, count, last_active
FROM guest_quota
WHERE identity = $1`

// Consume atomically increments the counter for identity, creating the
// record at count=1 if absent. Returns (newCount, true) when the request is
// admitted, and (0, false) with no mutation once count has reached limit.
func (r *Repo) Consume(ctx context.Context, identity string, limit int) (int, bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := querier.QueryRow(ctx, consumeSQL, identity, limit).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict branch skipped: the identity is at or over the limit.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("consume quota for %q: %w", identity, err)
	}

	return count, true, nil
}

// Get returns the quota record for identity without mutating it.
// Returns domain.ErrNotFound when the identity has never been seen.
func (r *Repo) Get(ctx context.Context, identity string) (domain.QuotaRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var rec domain.QuotaRecord
	err := querier.QueryRow(ctx, getSQL, identity).Scan(&rec.Identity, &rec.Count, &rec.LastActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuotaRecord{}, fmt.Errorf("quota %q: %w", identity, domain.ErrNotFound)
	}
	if err != nil {
		return domain.QuotaRecord{}, fmt.Errorf("get quota for %q: %w", identity, err)
	}

	return rec, nil
}
