package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type historyRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error)
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
}

type savedCardRepo interface {
	savedCardStore
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.SavedCard, error)
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service exposes the user-owned collections (history, saved cards) to the
// transport layer: filtered/sorted listing, batch deletion, and the
// save/unsave toggle.
type Service struct {
	history historyRepo
	saved   savedCardRepo
	tx      txManager
	log     *slog.Logger
}

// NewService creates a new collection service.
func NewService(log *slog.Logger, history historyRepo, saved savedCardRepo, tx txManager) *Service {
	return &Service{
		history: history,
		saved:   saved,
		tx:      tx,
		log:     log.With("service", "collection"),
	}
}

// ListHistory returns the user's generation history filtered and sorted per
// filter.
func (s *Service) ListHistory(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]domain.HistoryEntry, error) {
	entries, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{e})
	}

	projected := Project(items, filter)
	out := make([]domain.HistoryEntry, 0, len(projected))
	for _, it := range projected {
		out = append(out, it.HistoryEntry)
	}
	return out, nil
}

// DeleteHistory removes exactly the given history entries in one
// transaction. If any id does not belong to userID, nothing is deleted.
func (s *Service) DeleteHistory(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.history.DeleteByIDs(ctx, userID, ids)
	})
	if err != nil {
		return fmt.Errorf("delete history entries: %w", err)
	}

	s.log.Info("history entries deleted", "user_id", userID, "count", len(ids))
	return nil
}

// ListSavedCards returns the user's saved cards filtered and sorted per
// filter.
func (s *Service) ListSavedCards(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]domain.SavedCard, error) {
	cards, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved cards: %w", err)
	}

	items := make([]SavedCardItem, 0, len(cards))
	for _, c := range cards {
		items = append(items, SavedCardItem{c})
	}

	projected := Project(items, filter)
	out := make([]domain.SavedCard, 0, len(projected))
	for _, it := range projected {
		out = append(out, it.SavedCard)
	}
	return out, nil
}

// DeleteSavedCards removes exactly the given saved cards in one transaction.
// If any id does not belong to userID, nothing is deleted.
func (s *Service) DeleteSavedCards(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.saved.DeleteByIDs(ctx, userID, ids)
	})
	if err != nil {
		return fmt.Errorf("delete saved cards: %w", err)
	}

	s.log.Info("saved cards deleted", "user_id", userID, "count", len(ids))
	return nil
}

// NewHistoryController builds a list controller over the user's history.
func (s *Service) NewHistoryController(userID uuid.UUID) *Controller[HistoryItem] {
	return NewController(s.log, &historyStore{repo: s.history, tx: s.tx, userID: userID})
}

// NewSavedCardsController builds a list controller over the user's saved
// cards.
func (s *Service) NewSavedCardsController(userID uuid.UUID) *Controller[SavedCardItem] {
	return NewController(s.log, &savedCardStoreAdapter{repo: s.saved, tx: s.tx, userID: userID})
}

// NewSavedSet builds the save/unsave signature cache for userID.
func (s *Service) NewSavedSet(userID uuid.UUID) *SavedSet {
	return NewSavedSet(s.log, s.saved, userID)
}

// ToggleSave loads the user's saved-set and toggles one card. Convenience
// wrapper for the stateless transport layer.
func (s *Service) ToggleSave(ctx context.Context, userID uuid.UUID, in SaveInput) (bool, error) {
	set := s.NewSavedSet(userID)
	if err := set.Load(ctx); err != nil {
		return false, err
	}
	return set.Toggle(ctx, in)
}

// UpdateSavedCard rewrites a saved card in place by its old signature.
func (s *Service) UpdateSavedCard(ctx context.Context, userID uuid.UUID, oldTitle, oldContent, newTitle, newContent string) error {
	set := s.NewSavedSet(userID)
	if err := set.Load(ctx); err != nil {
		return err
	}
	return set.UpdateContent(ctx, oldTitle, oldContent, newTitle, newContent)
}

// ---------------------------------------------------------------------------
// Store adapters binding user-scoped repos to the generic controller
// ---------------------------------------------------------------------------

type historyStore struct {
	repo   historyRepo
	tx     txManager
	userID uuid.UUID
}

func (s *historyStore) List(ctx context.Context) ([]HistoryItem, error) {
	entries, err := s.repo.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{e})
	}
	return items, nil
}

func (s *historyStore) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.repo.DeleteByIDs(ctx, s.userID, ids)
	})
}

type savedCardStoreAdapter struct {
	repo   savedCardRepo
	tx     txManager
	userID uuid.UUID
}

func (s *savedCardStoreAdapter) List(ctx context.Context) ([]SavedCardItem, error) {
	cards, err := s.repo.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	items := make([]SavedCardItem, 0, len(cards))
	for _, c := range cards {
		items = append(items, SavedCardItem{c})
	}
	return items, nil
}

func (s *savedCardStoreAdapter) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.repo.DeleteByIDs(ctx, s.userID, ids)
	})
}
