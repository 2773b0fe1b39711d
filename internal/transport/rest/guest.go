package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
	"github.com/conceptdost/conceptdost-backend/pkg/ctxutil"
)

type quotaService interface {
	Status(ctx context.Context, identity string) (domain.GuestStatus, error)
}

// GuestHandler serves the anonymous-usage status endpoint.
type GuestHandler struct {
	svc quotaService
	log *slog.Logger
}

// NewGuestHandler creates a GuestHandler.
func NewGuestHandler(svc quotaService, logger *slog.Logger) *GuestHandler {
	return &GuestHandler{svc: svc, log: logger.With("handler", "guest")}
}

// Status handles GET /api/guest-status. The response is the bare status object,
// not the success envelope: it is a read-only poll and never fails in a way
// the client branches on.
func (h *GuestHandler) Status(w http.ResponseWriter, r *http.Request) {
	ip := ctxutil.ClientIPFromCtx(r.Context())
	if ip == "" {
		writeFailure(w, http.StatusBadRequest, "could not resolve caller identity", "")
		return
	}

	status, err := h.svc.Status(r.Context(), ip)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
