package quota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

const testLimit = 10

func newTestService(repo *quotaRepoMock) *Service {
	return NewService(slog.Default(), repo, testLimit)
}

func TestCheckAndConsume_Admitted(t *testing.T) {
	t.Parallel()

	repo := &quotaRepoMock{
		ConsumeFunc: func(ctx context.Context, identity string, limit int) (int, bool, error) {
			assert.Equal(t, "ip:1.2.3.4", identity)
			assert.Equal(t, testLimit, limit)
			return 3, true, nil
		},
	}
	svc := newTestService(repo)

	status, err := svc.CheckAndConsume(context.Background(), "ip:1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, 3, status.Used)
	assert.Equal(t, 7, status.Remaining)
	assert.False(t, status.LimitExceeded)
	assert.Equal(t, 1, repo.consumeCalls)
}

func TestCheckAndConsume_LastSlot(t *testing.T) {
	t.Parallel()

	repo := &quotaRepoMock{
		ConsumeFunc: func(ctx context.Context, identity string, limit int) (int, bool, error) {
			return testLimit, true, nil
		},
	}
	svc := newTestService(repo)

	status, err := svc.CheckAndConsume(context.Background(), "ip:1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, testLimit, status.Used)
	assert.Equal(t, 0, status.Remaining)
	assert.True(t, status.LimitExceeded)
}

func TestCheckAndConsume_Denied(t *testing.T) {
	t.Parallel()

	repo := &quotaRepoMock{
		ConsumeFunc: func(ctx context.Context, identity string, limit int) (int, bool, error) {
			return 0, false, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.CheckAndConsume(context.Background(), "ip:1.2.3.4")
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestCheckAndConsume_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("connection refused")
	repo := &quotaRepoMock{
		ConsumeFunc: func(ctx context.Context, identity string, limit int) (int, bool, error) {
			return 0, false, repoErr
		},
	}
	svc := newTestService(repo)

	_, err := svc.CheckAndConsume(context.Background(), "ip:1.2.3.4")
	require.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestStatus_UnknownIdentityReportsZero(t *testing.T) {
	t.Parallel()

	repo := &quotaRepoMock{
		GetFunc: func(ctx context.Context, identity string) (domain.QuotaRecord, error) {
			return domain.QuotaRecord{}, fmt.Errorf("quota %q: %w", identity, domain.ErrNotFound)
		},
	}
	svc := newTestService(repo)

	status, err := svc.Status(context.Background(), "ip:9.9.9.9")
	require.NoError(t, err)

	assert.Equal(t, 0, status.Used)
	assert.Equal(t, testLimit, status.Remaining)
	assert.False(t, status.LimitExceeded)
}

func TestStatus_DoesNotConsume(t *testing.T) {
	t.Parallel()

	repo := &quotaRepoMock{
		GetFunc: func(ctx context.Context, identity string) (domain.QuotaRecord, error) {
			return domain.QuotaRecord{Identity: identity, Count: 4}, nil
		},
	}
	svc := newTestService(repo)

	status, err := svc.Status(context.Background(), "ip:1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, 4, status.Used)
	assert.Equal(t, 6, status.Remaining)
	assert.Equal(t, 0, repo.consumeCalls, "Status must never increment the counter")
}

func TestStatus_AtAndOverLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		count         int
		wantRemaining int
	}{
		{"at limit", testLimit, 0},
		{"over limit", testLimit + 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &quotaRepoMock{
				GetFunc: func(ctx context.Context, identity string) (domain.QuotaRecord, error) {
					return domain.QuotaRecord{Identity: identity, Count: tt.count}, nil
				},
			}
			svc := newTestService(repo)

			status, err := svc.Status(context.Background(), "ip:1.2.3.4")
			require.NoError(t, err)

			assert.Equal(t, tt.count, status.Used)
			assert.Equal(t, tt.wantRemaining, status.Remaining)
			assert.True(t, status.LimitExceeded)
		})
	}
}
