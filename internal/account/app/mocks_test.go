package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gotodo/internal/account/domain/entities"
	"gotodo/internal/account/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Store(ctx context.Context, session *services.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepository) Find(ctx context.Context, sessionID string) (*services.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *mockSessionRepository) Revoke(ctx context.Context, userID, sessionID string) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *mockSessionRepository) RevokeAllExcept(ctx context.Context, userID, keepSessionID string) error {
	return m.Called(ctx, userID, keepSessionID).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, userID, username string) (*services.IssuedToken, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.IssuedToken), args.Error(1)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mocks struct {
	users    *mockUserRepository
	sessions *mockSessionRepository
	password *mockPasswordService
	tokens   *mockTokenService
}

func newMocks() *mocks {
	return &mocks{
		users:    new(mockUserRepository),
		sessions: new(mockSessionRepository),
		password: new(mockPasswordService),
		tokens:   new(mockTokenService),
	}
}

func (m *mocks) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.sessions.AssertExpectations(t)
	m.password.AssertExpectations(t)
	m.tokens.AssertExpectations(t)
}
