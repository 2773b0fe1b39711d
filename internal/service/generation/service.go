// Package generation implements the quota-gated generation gateway: it
// admits callers, assembles provider prompts, and repairs provider output
// into validated card sets.
package generation

import (
	"context"
	"log/slog"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type quotaGateway interface {
	CheckAndConsume(ctx context.Context, identity string) (domain.GuestStatus, error)
}

type historyRepo interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the generation business logic.
type Service struct {
	llm     textGenerator
	quota   quotaGateway
	history historyRepo
	log     *slog.Logger
}

// NewService creates a new generation service.
func NewService(log *slog.Logger, llm textGenerator, quota quotaGateway, history historyRepo) *Service {
	return &Service{
		llm:     llm,
		quota:   quota,
		history: history,
		log:     log.With("service", "generation"),
	}
}
