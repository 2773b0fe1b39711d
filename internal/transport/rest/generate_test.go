package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
	"github.com/conceptdost/conceptdost-backend/internal/service/generation"
)

type generationServiceMock struct {
	generateFn func(ctx context.Context, input generation.GenerateInput) (generation.GenerateResult, error)
	simplifyFn func(ctx context.Context, input generation.SimplifyInput) (string, error)
}

func (m *generationServiceMock) Generate(ctx context.Context, input generation.GenerateInput) (generation.GenerateResult, error) {
	return m.generateFn(ctx, input)
}

func (m *generationServiceMock) Simplify(ctx context.Context, input generation.SimplifyInput) (string, error) {
	return m.simplifyFn(ctx, input)
}

type testEnvelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorType string          `json:"errorType"`
	Data      json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}

func testCards(n int) domain.CardSet {
	cards := make(domain.CardSet, 0, n)
	for i := 1; i <= n; i++ {
		cards = append(cards, domain.Card{
			Title:   fmt.Sprintf("Card %d", i),
			Content: fmt.Sprintf("Content %d", i),
		})
	}
	return cards
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	var gotInput generation.GenerateInput
	svc := &generationServiceMock{
		generateFn: func(_ context.Context, input generation.GenerateInput) (generation.GenerateResult, error) {
			gotInput = input
			return generation.GenerateResult{Cards: testCards(4)}, nil
		},
	}
	h := NewGenerateHandler(svc, slog.Default())

	body := `{"topic":"Goroutines","language":"English","style":"Friendly","detailLevel":"short","cardLimit":4}`
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("expected success true")
	}

	var resp generateResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(resp.Cards) != 4 {
		t.Errorf("expected 4 cards, got %d", len(resp.Cards))
	}
	if resp.HistoryID != "" {
		t.Errorf("expected empty historyId for result without one, got %q", resp.HistoryID)
	}

	if gotInput.Topic != "Goroutines" {
		t.Errorf("expected topic to reach the service, got %q", gotInput.Topic)
	}
	if gotInput.DetailLevel != domain.DetailShort {
		t.Errorf("expected detail level short, got %q", gotInput.DetailLevel)
	}
}

func TestGenerate_LimitExceededEnvelope(t *testing.T) {
	t.Parallel()

	svc := &generationServiceMock{
		generateFn: func(_ context.Context, _ generation.GenerateInput) (generation.GenerateResult, error) {
			return generation.GenerateResult{}, fmt.Errorf("guest quota: %w", domain.ErrLimitExceeded)
		},
	}
	h := NewGenerateHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"topic":"Slices"}`))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("expected success false")
	}
	if env.ErrorType != "LIMIT_EXCEEDED" {
		t.Errorf("expected errorType LIMIT_EXCEEDED, got %q", env.ErrorType)
	}
	if env.Message != "You have used all your free questions. Please Login to continue." {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	t.Parallel()

	svc := &generationServiceMock{
		generateFn: func(_ context.Context, _ generation.GenerateInput) (generation.GenerateResult, error) {
			t.Fatal("service must not be called for an unparseable body")
			return generation.GenerateResult{}, nil
		},
	}
	h := NewGenerateHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGenerate_MalformedOutputIs502(t *testing.T) {
	t.Parallel()

	svc := &generationServiceMock{
		generateFn: func(_ context.Context, _ generation.GenerateInput) (generation.GenerateResult, error) {
			return generation.GenerateResult{}, fmt.Errorf("parse cards: %w", domain.ErrMalformedOutput)
		},
	}
	h := NewGenerateHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"topic":"Maps"}`))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestSimplify_ResponseShape(t *testing.T) {
	t.Parallel()

	svc := &generationServiceMock{
		simplifyFn: func(_ context.Context, input generation.SimplifyInput) (string, error) {
			if input.Content != "A goroutine is a lightweight thread." {
				t.Errorf("unexpected content %q", input.Content)
			}
			return "Simpler explanation.", nil
		},
	}
	h := NewGenerateHandler(svc, slog.Default())

	body := `{"title":"Goroutines","content":"A goroutine is a lightweight thread.","detailLevel":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/simplify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Simplify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// Simplify answers with a flat object, not the data envelope.
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["success"] != true {
		t.Error("expected success true")
	}
	if resp["newContent"] != "Simpler explanation." {
		t.Errorf("expected newContent, got %v", resp["newContent"])
	}
	if _, ok := resp["data"]; ok {
		t.Error("simplify response must not nest under data")
	}
}

func TestSimplify_UpstreamFailure(t *testing.T) {
	t.Parallel()

	svc := &generationServiceMock{
		simplifyFn: func(_ context.Context, _ generation.SimplifyInput) (string, error) {
			return "", fmt.Errorf("provider: %w", domain.ErrUpstream)
		},
	}
	h := NewGenerateHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/simplify", strings.NewReader(`{"content":"x"}`))
	rec := httptest.NewRecorder()

	h.Simplify(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("expected success false")
	}
}
