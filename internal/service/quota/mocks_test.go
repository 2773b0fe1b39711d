package quota

import (
	"context"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// quotaRepoMock is a func-field mock of quotaRepo.
type quotaRepoMock struct {
	ConsumeFunc func(ctx context.Context, identity string, limit int) (int, bool, error)
	GetFunc     func(ctx context.Context, identity string) (domain.QuotaRecord, error)

	consumeCalls int
	getCalls     int
}

func (m *quotaRepoMock) Consume(ctx context.Context, identity string, limit int) (int, bool, error) {
	m.consumeCalls++
	return m.ConsumeFunc(ctx, identity, limit)
}

func (m *quotaRepoMock) Get(ctx context.Context, identity string) (domain.QuotaRecord, error) {
	m.getCalls++
	return m.GetFunc(ctx, identity)
}
