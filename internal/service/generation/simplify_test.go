package generation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

func TestSimplify_TrimsAndReturnsText(t *testing.T) {
	t.Parallel()

	llm := &textGeneratorMock{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			return "\n  A **pointer** is just an address, like a house number.  \n", nil
		},
	}
	svc := newTestService(llm, allowAllQuota(), noopHistory())

	out, err := svc.Simplify(context.Background(), SimplifyInput{
		Title:   "Pointers",
		Content: "A pointer holds the memory address of a value.",
		Topic:   "Go basics",
	})
	require.NoError(t, err)
	assert.Equal(t, "A **pointer** is just an address, like a house number.", out)
}

func TestSimplify_NoQuotaConsumed(t *testing.T) {
	t.Parallel()

	quota := &quotaGatewayMock{
		CheckAndConsumeFunc: func(ctx context.Context, identity string) (domain.GuestStatus, error) {
			t.Fatal("simplify must not consume quota")
			return domain.GuestStatus{}, nil
		},
	}
	llm := &textGeneratorMock{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Simpler text.", nil
		},
	}
	svc := newTestService(llm, quota, noopHistory())

	_, err := svc.Simplify(context.Background(), SimplifyInput{
		Title:   "Channels",
		Content: "Channels synchronize goroutines.",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, quota.calls)
}

func TestSimplify_UpstreamErrorPropagates(t *testing.T) {
	t.Parallel()

	llm := &textGeneratorMock{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", fmt.Errorf("claude api call: %w", domain.ErrUpstream)
		},
	}
	svc := newTestService(llm, allowAllQuota(), noopHistory())

	_, err := svc.Simplify(context.Background(), SimplifyInput{
		Title:   "Maps",
		Content: "Maps are hash tables.",
	})
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSimplify_EmptyContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(&textGeneratorMock{}, allowAllQuota(), noopHistory())

	_, err := svc.Simplify(context.Background(), SimplifyInput{Title: "X", Content: "  "})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSimplify_PromptReflectsDetailLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level domain.DetailLevel
		want  string
	}{
		{domain.DetailShort, "20-30 words max"},
		{domain.DetailMedium, "50-60 words"},
		{domain.DetailDetailed, "60-80 words"},
		{domain.DetailDefault, "around 40 words"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()

			llm := &textGeneratorMock{
				GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
					return "ok", nil
				},
			}
			svc := newTestService(llm, allowAllQuota(), noopHistory())

			_, err := svc.Simplify(context.Background(), SimplifyInput{
				Title:       "T",
				Content:     "some content",
				DetailLevel: tt.level,
			})
			require.NoError(t, err)
			require.Len(t, llm.prompts, 1)
			assert.Contains(t, llm.prompts[0], tt.want)
		})
	}
}
