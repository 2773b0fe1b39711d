// Package quota implements the guest usage gate: a cumulative per-identity
// counter that admits requests until a configured lifetime limit is reached.
package quota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type quotaRepo interface {
	// Consume atomically increments the counter for identity, admitting the
	// request only while the counter is below limit.
	Consume(ctx context.Context, identity string, limit int) (count int, admitted bool, err error)
	Get(ctx context.Context, identity string) (domain.QuotaRecord, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the guest quota business logic.
type Service struct {
	quotas quotaRepo
	limit  int
	log    *slog.Logger
}

// NewService creates a new quota service. limit is the lifetime number of
// admitted requests per identity.
func NewService(log *slog.Logger, quotas quotaRepo, limit int) *Service {
	return &Service{
		quotas: quotas,
		limit:  limit,
		log:    log.With("service", "quota"),
	}
}

// CheckAndConsume admits one request for identity, incrementing its counter.
// Returns domain.ErrLimitExceeded once the lifetime limit is reached; the
// denied attempt does not change the counter.
func (s *Service) CheckAndConsume(ctx context.Context, identity string) (domain.GuestStatus, error) {
	count, admitted, err := s.quotas.Consume(ctx, identity, s.limit)
	if err != nil {
		return domain.GuestStatus{}, fmt.Errorf("consume quota: %w", err)
	}
	if !admitted {
		s.log.Info("guest limit reached", "identity", identity, "limit", s.limit)
		return domain.GuestStatus{}, fmt.Errorf("identity %q: %w", identity, domain.ErrLimitExceeded)
	}

	return s.status(count), nil
}

// Status reports current usage for identity without consuming anything.
// An identity that has never been seen reports zero usage.
func (s *Service) Status(ctx context.Context, identity string) (domain.GuestStatus, error) {
	rec, err := s.quotas.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.status(0), nil
		}
		return domain.GuestStatus{}, fmt.Errorf("get quota: %w", err)
	}

	return s.status(rec.Count), nil
}

func (s *Service) status(count int) domain.GuestStatus {
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return domain.GuestStatus{
		Used:          count,
		Remaining:     remaining,
		LimitExceeded: count >= s.limit,
	}
}
