package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	tokens, err := NewTokens(testSecret, time.Hour)
	require.NoError(t, err)
	return NewService(repo, tokens, nil)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(mockAccountRepository)
	service := newTestService(t, repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*auth.Account")).Return(nil)

	account, err := service.Register(ctx, "  Angler@Example.COM ", "supersecret")
	require.NoError(t, err)

	assert.Equal(t, "angler@example.com", account.Email)
	assert.NotEmpty(t, account.ID)
	assert.NotEqual(t, "supersecret", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(account.PasswordHash), []byte("supersecret")))
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := new(mockAccountRepository)
	service := newTestService(t, repo)
	ctx := context.Background()

	var invalidEmail *InvalidEmailError
	_, err := service.Register(ctx, "not-an-email", "supersecret")
	assert.ErrorAs(t, err, &invalidEmail)

	var weakPassword *WeakPasswordError
	_, err = service.Register(ctx, "angler@example.com", "short")
	assert.ErrorAs(t, err, &weakPassword)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := new(mockAccountRepository)
	service := newTestService(t, repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(ErrEmailTaken)

	_, err := service.Register(ctx, "angler@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := new(mockAccountRepository)
	service := newTestService(t, repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", ctx, "angler@example.com").Return(&Account{
		ID:           "user-1",
		Email:        "angler@example.com",
		PasswordHash: string(hash),
	}, nil)

	token, err := service.Login(ctx, "Angler@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := new(mockAccountRepository)
	service := newTestService(t, repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", ctx, "known@example.com").Return(&Account{
		ID:           "user-1",
		PasswordHash: string(hash),
	}, nil)
	repo.On("GetByEmail", ctx, "unknown@example.com").Return(nil, ErrAccountNotFound)

	_, wrongPass := service.Login(ctx, "known@example.com", "wrong")
	_, unknown := service.Login(ctx, "unknown@example.com", "supersecret")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}
