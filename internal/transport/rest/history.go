package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
	"github.com/conceptdost/conceptdost-backend/pkg/ctxutil"
)

type historyService interface {
	ListHistory(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]domain.HistoryEntry, error)
	DeleteHistory(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
}

// HistoryHandler serves the generation history endpoints.
type HistoryHandler struct {
	svc historyService
	log *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(svc historyService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, log: logger.With("handler", "history")}
}

type historyEntryResponse struct {
	ID        string                    `json:"id"`
	Topic     string                    `json:"topic"`
	Cards     domain.CardSet            `json:"cards"`
	Settings  domain.GenerationSettings `json:"settings"`
	CreatedAt time.Time                 `json:"createdAt"`
}

// List handles GET /api/history?search=...&sort=newest|oldest.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	filter := domain.ListFilter{
		Search: r.URL.Query().Get("search"),
		Sort:   domain.ParseSortOrder(r.URL.Query().Get("sort")),
	}

	entries, err := h.svc.ListHistory(r.Context(), userID, filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			ID:        e.ID.String(),
			Topic:     e.Topic,
			Cards:     e.Cards,
			Settings:  e.Settings,
			CreatedAt: e.CreatedAt,
		})
	}

	writeSuccess(w, http.StatusOK, out)
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (req batchDeleteRequest) parseIDs() ([]uuid.UUID, error) {
	if len(req.IDs) == 0 {
		return nil, domain.NewValidationError("ids", "must not be empty")
	}

	// Duplicates are collapsed so the all-or-nothing row count downstream
	// matches the number of distinct rows.
	ids := make([]uuid.UUID, 0, len(req.IDs))
	seen := make(map[uuid.UUID]struct{}, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.NewValidationError("ids", "invalid id "+raw)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete handles DELETE /api/history. The body carries the exact id set; the
// delete is all-or-nothing.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.DeleteHistory(r.Context(), userID, ids); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int{"deleted": len(ids)})
}
