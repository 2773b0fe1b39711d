package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
	"github.com/conceptdost/conceptdost-backend/pkg/ctxutil"
)

// GenerateResult is the outcome of one successful generation.
type GenerateResult struct {
	Cards domain.CardSet
	// HistoryID is set when the caller is authenticated and the result was
	// recorded in their history.
	HistoryID *uuid.UUID
}

// Generate runs the full gateway flow: admission, prompt assembly, provider
// invocation, output repair, shape validation, and (for authenticated
// callers) history recording. Steps run strictly in that order; a quota
// denial performs no provider work.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	if err := input.normalize(); err != nil {
		return GenerateResult{}, err
	}

	userID, authenticated := ctxutil.UserIDFromCtx(ctx)
	if !authenticated {
		if err := s.admitGuest(ctx); err != nil {
			return GenerateResult{}, err
		}
	}

	prompt := buildGeneratePrompt(input)

	raw, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate cards for %q: %w", input.Topic, err)
	}

	cards, err := parseCardSet(raw, input.CardCount)
	if err != nil {
		s.log.Warn("provider output rejected",
			"topic", input.Topic,
			"error", err,
		)
		return GenerateResult{}, err
	}

	result := GenerateResult{Cards: cards}

	if authenticated {
		entry := &domain.HistoryEntry{
			ID:        uuid.New(),
			UserID:    userID,
			Topic:     input.Topic,
			Cards:     cards,
			Settings:  input.Settings,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.history.Create(ctx, entry); err != nil {
			// The cards are already generated and paid for; losing the
			// history row is preferable to discarding the result.
			s.log.Warn("history write failed after successful generation",
				"user_id", userID,
				"topic", input.Topic,
				"error", err,
			)
		} else {
			result.HistoryID = &entry.ID
		}
	}

	s.log.Info("cards generated",
		"topic", input.Topic,
		"count", len(cards),
		"authenticated", authenticated,
	)

	return result, nil
}

// admitGuest runs the anonymous caller through the quota gateway, using the
// resolved client IP as the identity.
func (s *Service) admitGuest(ctx context.Context) error {
	ip := ctxutil.ClientIPFromCtx(ctx)
	if ip == "" {
		return domain.NewValidationError("client_ip", "could not resolve caller identity")
	}

	if _, err := s.quota.CheckAndConsume(ctx, ip); err != nil {
		return err
	}

	return nil
}
