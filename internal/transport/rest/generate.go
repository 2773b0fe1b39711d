package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
	"github.com/conceptdost/conceptdost-backend/internal/service/generation"
)

type generationService interface {
	Generate(ctx context.Context, input generation.GenerateInput) (generation.GenerateResult, error)
	Simplify(ctx context.Context, input generation.SimplifyInput) (string, error)
}

// GenerateHandler serves the card generation endpoints.
type GenerateHandler struct {
	svc generationService
	log *slog.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(svc generationService, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{svc: svc, log: logger.With("handler", "generate")}
}

type generateRequest struct {
	Topic       string `json:"topic"`
	Language    string `json:"language"`
	Style       string `json:"style"`
	Persona     string `json:"persona"`
	DetailLevel string `json:"detailLevel"`
	CardLimit   int    `json:"cardLimit"`
}

type generateResponse struct {
	Cards     domain.CardSet `json:"cards"`
	HistoryID string         `json:"historyId,omitempty"`
}

// Generate handles POST /api/generate.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Generate(r.Context(), generation.GenerateInput{
		Topic: req.Topic,
		Settings: domain.GenerationSettings{
			Language: req.Language,
			Style:    req.Style,
			Persona:  req.Persona,
		},
		DetailLevel: domain.ParseDetailLevel(req.DetailLevel),
		CardCount:   req.CardLimit,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := generateResponse{Cards: result.Cards}
	if result.HistoryID != nil {
		resp.HistoryID = result.HistoryID.String()
	}

	writeSuccess(w, http.StatusOK, resp)
}

type simplifyRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Topic       string `json:"topic"`
	Style       string `json:"style"`
	Language    string `json:"language"`
	DetailLevel string `json:"detailLevel"`
}

type simplifyResponse struct {
	Success    bool   `json:"success"`
	NewContent string `json:"newContent"`
}

// Simplify handles POST /api/simplify.
func (h *GenerateHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var req simplifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	newContent, err := h.svc.Simplify(r.Context(), generation.SimplifyInput{
		Title:       req.Title,
		Content:     req.Content,
		Topic:       req.Topic,
		Style:       req.Style,
		Language:    req.Language,
		DetailLevel: domain.ParseDetailLevel(req.DetailLevel),
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, simplifyResponse{Success: true, NewContent: newContent})
}
