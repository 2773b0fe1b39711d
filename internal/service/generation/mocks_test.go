package generation

import (
	"context"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

type textGeneratorMock struct {
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	calls   int
	prompts []string
}

func (m *textGeneratorMock) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	return m.GenerateTextFunc(ctx, prompt)
}

type quotaGatewayMock struct {
	CheckAndConsumeFunc func(ctx context.Context, identity string) (domain.GuestStatus, error)

	calls      int
	identities []string
}

func (m *quotaGatewayMock) CheckAndConsume(ctx context.Context, identity string) (domain.GuestStatus, error) {
	m.calls++
	m.identities = append(m.identities, identity)
	return m.CheckAndConsumeFunc(ctx, identity)
}

type historyRepoMock struct {
	CreateFunc func(ctx context.Context, entry *domain.HistoryEntry) error

	calls   int
	entries []*domain.HistoryEntry
}

func (m *historyRepoMock) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	m.calls++
	m.entries = append(m.entries, entry)
	return m.CreateFunc(ctx, entry)
}
