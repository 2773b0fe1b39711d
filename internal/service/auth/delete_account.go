package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// DeleteAccount permanently deletes the account behind accessToken together
// with everything it owns: history, saved cards, refresh tokens, the user row.
// All deletions happen in one transaction.
//
// The token must have been issued within the configured reauth window;
// otherwise ErrRecentLoginRequired is returned and the client is expected to
// re-authenticate and retry. A stale session is not allowed to destroy an
// account.
func (s *Service) DeleteAccount(ctx context.Context, accessToken string) error {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return domain.ErrUnauthorized
	}

	if time.Since(claims.IssuedAt) > s.cfg.ReauthWindow {
		s.log.InfoContext(ctx, "account deletion needs re-login",
			slog.String("user_id", claims.UserID.String()),
			slog.Time("token_issued_at", claims.IssuedAt))
		return domain.ErrRecentLoginRequired
	}

	userID := claims.UserID

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.owned.DeleteAllHistory(ctx, userID); err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
		if err := s.owned.DeleteAllSavedCards(ctx, userID); err != nil {
			return fmt.Errorf("delete saved cards: %w", err)
		}
		if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("revoke tokens: %w", err)
		}
		if err := s.users.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("auth.DeleteAccount: %w", err)
	}

	s.log.InfoContext(ctx, "account deleted", slog.String("user_id", userID.String()))
	return nil
}
