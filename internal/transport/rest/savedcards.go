package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
	"github.com/conceptdost/conceptdost-backend/internal/service/collection"
	"github.com/conceptdost/conceptdost-backend/pkg/ctxutil"
)

type savedCardsService interface {
	ListSavedCards(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]domain.SavedCard, error)
	DeleteSavedCards(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	ToggleSave(ctx context.Context, userID uuid.UUID, in collection.SaveInput) (bool, error)
	UpdateSavedCard(ctx context.Context, userID uuid.UUID, oldTitle, oldContent, newTitle, newContent string) error
}

// SavedCardsHandler serves the saved-cards endpoints.
type SavedCardsHandler struct {
	svc savedCardsService
	log *slog.Logger
}

// NewSavedCardsHandler creates a SavedCardsHandler.
func NewSavedCardsHandler(svc savedCardsService, logger *slog.Logger) *SavedCardsHandler {
	return &SavedCardsHandler{svc: svc, log: logger.With("handler", "savedcards")}
}

type savedCardResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Topic      string    `json:"topic"`
	ColorClass string    `json:"colorClass"`
	SavedAt    time.Time `json:"savedAt"`
}

// List handles GET /api/saved-cards?search=...&sort=newest|oldest.
func (h *SavedCardsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	filter := domain.ListFilter{
		Search: r.URL.Query().Get("search"),
		Sort:   domain.ParseSortOrder(r.URL.Query().Get("sort")),
	}

	cards, err := h.svc.ListSavedCards(r.Context(), userID, filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]savedCardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, savedCardResponse{
			ID:         c.ID.String(),
			Title:      c.Title,
			Content:    c.Content,
			Topic:      c.Topic,
			ColorClass: c.ColorClass,
			SavedAt:    c.SavedAt,
		})
	}

	writeSuccess(w, http.StatusOK, out)
}

type toggleSaveRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Topic      string `json:"topic"`
	ColorClass string `json:"colorClass"`
}

// Toggle handles POST /api/saved-cards/toggle: saves the card when its
// (title, content) signature is unknown, unsaves it otherwise.
func (h *SavedCardsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req toggleSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		respondError(h.log, w, r, domain.NewValidationError("card", "title and content are required"))
		return
	}

	saved, err := h.svc.ToggleSave(r.Context(), userID, collection.SaveInput{
		Title:      req.Title,
		Content:    req.Content,
		Topic:      req.Topic,
		ColorClass: req.ColorClass,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]bool{"saved": saved})
}

type updateSavedCardRequest struct {
	OldTitle   string `json:"oldTitle"`
	OldContent string `json:"oldContent"`
	NewTitle   string `json:"newTitle"`
	NewContent string `json:"newContent"`
}

// Update handles PATCH /api/saved-cards: rewrites an already-saved card in place
// (after simplify) while keeping its identity.
func (h *SavedCardsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req updateSavedCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OldTitle == "" || req.OldContent == "" || req.NewTitle == "" || req.NewContent == "" {
		respondError(h.log, w, r, domain.NewValidationError("card", "old and new title/content are required"))
		return
	}

	err := h.svc.UpdateSavedCard(r.Context(), userID, req.OldTitle, req.OldContent, req.NewTitle, req.NewContent)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}

// Delete handles DELETE /api/saved-cards. The body carries the exact id set;
// the delete is all-or-nothing.
func (h *SavedCardsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req batchDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids, err := req.parseIDs()
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeleteSavedCards(r.Context(), userID, ids); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int{"deleted": len(ids)})
}
