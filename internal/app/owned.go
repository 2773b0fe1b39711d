package app

import (
	"context"

	"github.com/google/uuid"

	historyrepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/history"
	savedcardrepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/savedcard"
)

// ownedCollections bundles the per-user stores the auth service clears
// when an account is deleted.
type ownedCollections struct {
	history *historyrepo.Repo
	saved   *savedcardrepo.Repo
}

func (o ownedCollections) DeleteAllHistory(ctx context.Context, userID uuid.UUID) error {
	return o.history.DeleteAllByUser(ctx, userID)
}

func (o ownedCollections) DeleteAllSavedCards(ctx context.Context, userID uuid.UUID) error {
	return o.saved.DeleteAllByUser(ctx, userID)
}
