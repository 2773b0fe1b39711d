package token_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/testhelper"
	"github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/token"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

func seedToken(t *testing.T, repo *token.Repo, userID uuid.UUID, ttl time.Duration) *domain.RefreshToken {
	t.Helper()

	tok := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: "hash-" + uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := repo.Create(context.Background(), tok); err != nil {
		t.Fatalf("Create token: %v", err)
	}
	return tok
}

func TestCreateAndGetByHash(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	tok := seedToken(t, repo, u.ID, time.Hour)

	got, err := repo.GetByHash(ctx, tok.TokenHash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if got.UserID != u.ID {
		t.Errorf("expected user %s, got %s", u.ID, got.UserID)
	}
	if got.IsRevoked() {
		t.Error("fresh token must not be revoked")
	}
}

func TestGetByHash_ExpiredInvisible(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	tok := seedToken(t, repo, u.ID, -time.Minute)

	if _, err := repo.GetByHash(ctx, tok.TokenHash); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired token, got %v", err)
	}
}

func TestRevokeByID_HidesToken(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	tok := seedToken(t, repo, u.ID, time.Hour)

	got, err := repo.GetByHash(ctx, tok.TokenHash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}

	if err := repo.RevokeByID(ctx, got.ID); err != nil {
		t.Fatalf("RevokeByID: %v", err)
	}
	if _, err := repo.GetByHash(ctx, tok.TokenHash); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected revoked token to be invisible, got %v", err)
	}

	// Idempotent.
	if err := repo.RevokeByID(ctx, got.ID); err != nil {
		t.Fatalf("second RevokeByID: %v", err)
	}
}

func TestRevokeAllByUser(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	t1 := seedToken(t, repo, u.ID, time.Hour)
	t2 := seedToken(t, repo, u.ID, time.Hour)
	kept := seedToken(t, repo, other.ID, time.Hour)

	if err := repo.RevokeAllByUser(ctx, u.ID); err != nil {
		t.Fatalf("RevokeAllByUser: %v", err)
	}

	for _, hash := range []string{t1.TokenHash, t2.TokenHash} {
		if _, err := repo.GetByHash(ctx, hash); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected token revoked, got %v", err)
		}
	}
	if _, err := repo.GetByHash(ctx, kept.TokenHash); err != nil {
		t.Fatalf("other user's token must survive: %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	seedToken(t, repo, u.ID, -time.Minute)
	live := seedToken(t, repo, u.ID, time.Hour)

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n < 1 {
		t.Fatalf("expected at least 1 deleted token, got %d", n)
	}

	if _, err := repo.GetByHash(ctx, live.TokenHash); err != nil {
		t.Fatalf("live token must survive cleanup: %v", err)
	}
}
