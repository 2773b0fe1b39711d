package collection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

type savedCardStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedCard, error)
	Create(ctx context.Context, c *domain.SavedCard) error
	DeleteByID(ctx context.Context, userID, id uuid.UUID) error
	UpdateContent(ctx context.Context, userID, id uuid.UUID, title, content string) error
}

// SavedSet tracks which (title, content) signatures a user has saved,
// backing the save/unsave toggle used by the generation and history views.
// The cache mirrors the store: an entry is inserted only after a create
// confirms and evicted only after a delete confirms.
type SavedSet struct {
	store  savedCardStore
	userID uuid.UUID
	log    *slog.Logger

	bySignature map[string]uuid.UUID
}

// NewSavedSet creates an empty saved-set for userID. Call Load before the
// first membership check.
func NewSavedSet(log *slog.Logger, store savedCardStore, userID uuid.UUID) *SavedSet {
	return &SavedSet{
		store:       store,
		userID:      userID,
		log:         log.With("service", "collection"),
		bySignature: make(map[string]uuid.UUID),
	}
}

// Load rebuilds the signature cache from the store.
func (s *SavedSet) Load(ctx context.Context) error {
	cards, err := s.store.ListByUser(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load saved set: %w", err)
	}

	clear(s.bySignature)
	for _, c := range cards {
		s.bySignature[c.Signature()] = c.ID
	}
	return nil
}

// IsSaved reports whether a card with this (title, content) signature is
// saved, and under which id.
func (s *SavedSet) IsSaved(title, content string) (uuid.UUID, bool) {
	id, ok := s.bySignature[domain.CardSignature(title, content)]
	return id, ok
}

// SaveInput describes the card being toggled.
type SaveInput struct {
	Title      string
	Content    string
	Topic      string
	ColorClass string
}

// Toggle saves the card if its signature is unknown and unsaves it
// otherwise. Returns whether the card is saved after the call. The cache is
// only mutated after the store confirms, so a failed call leaves no
// divergence between the two.
func (s *SavedSet) Toggle(ctx context.Context, in SaveInput) (bool, error) {
	sig := domain.CardSignature(in.Title, in.Content)

	if id, ok := s.bySignature[sig]; ok {
		if err := s.store.DeleteByID(ctx, s.userID, id); err != nil {
			return true, fmt.Errorf("unsave card: %w", err)
		}
		delete(s.bySignature, sig)
		return false, nil
	}

	card := &domain.SavedCard{
		ID:         uuid.New(),
		UserID:     s.userID,
		Title:      in.Title,
		Content:    in.Content,
		Topic:      in.Topic,
		ColorClass: in.ColorClass,
		SavedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, card); err != nil {
		return false, fmt.Errorf("save card: %w", err)
	}
	s.bySignature[sig] = card.ID

	return true, nil
}

// UpdateContent rewrites an already-saved card in place, keeping its id.
// Used when content was edited (simplified) after saving: the record is
// updated rather than re-inserted, and the cache is re-keyed to the new
// signature under the original id.
func (s *SavedSet) UpdateContent(ctx context.Context, oldTitle, oldContent, newTitle, newContent string) error {
	oldSig := domain.CardSignature(oldTitle, oldContent)
	id, ok := s.bySignature[oldSig]
	if !ok {
		return fmt.Errorf("saved card with signature %q: %w", oldSig, domain.ErrNotFound)
	}

	if err := s.store.UpdateContent(ctx, s.userID, id, newTitle, newContent); err != nil {
		return fmt.Errorf("update saved card: %w", err)
	}

	delete(s.bySignature, oldSig)
	s.bySignature[domain.CardSignature(newTitle, newContent)] = id

	return nil
}
