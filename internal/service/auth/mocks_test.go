package auth

import (
	"context"

	"github.com/google/uuid"

	authpkg "github.com/conceptdost/conceptdost-backend/internal/auth"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error

	createCalls int
	deleteCalls int
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	m.createCalls++
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, id)
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)

	createCalls    int
	revokeCalls    int
	revokeAllCalls int
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.createCalls++
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	m.revokeCalls++
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	m.revokeAllCalls++
	return m.RevokeAllByUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	return m.DeleteExpiredFunc(ctx)
}

type ownedCollectionsMock struct {
	DeleteAllHistoryFunc    func(ctx context.Context, userID uuid.UUID) error
	DeleteAllSavedCardsFunc func(ctx context.Context, userID uuid.UUID) error

	historyCalls int
	savedCalls   int
}

func (m *ownedCollectionsMock) DeleteAllHistory(ctx context.Context, userID uuid.UUID) error {
	m.historyCalls++
	return m.DeleteAllHistoryFunc(ctx, userID)
}

func (m *ownedCollectionsMock) DeleteAllSavedCards(ctx context.Context, userID uuid.UUID) error {
	m.savedCalls++
	return m.DeleteAllSavedCardsFunc(ctx, userID)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (authpkg.TokenClaims, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (authpkg.TokenClaims, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}
