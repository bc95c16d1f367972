package member

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/IsroilovA/gym-class-management/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*Member, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

const testSecret = "test-secret"

func TestRegisterSuccess(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	repo.On("EmailExists", ctx, "alice@example.com").Return(false, nil)
	repo.On("Create", ctx, "Alice", "alice@example.com", mock.AnythingOfType("string"), "member").
		Return(&Member{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "member", CreatedAt: time.Now()}, nil)

	m, accessToken, refreshToken, err := svc.Register(ctx, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), m.ID)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := auth.ValidateToken(accessToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.MemberID)
	require.Equal(t, "member", claims.Role)
}

func TestRegisterEmailExists(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	repo.On("EmailExists", ctx, "alice@example.com").Return(true, nil)

	_, _, _, err := svc.Register(ctx, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	repo.On("FindByEmail", ctx, "alice@example.com").
		Return(&Member{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: hash, Role: "member"}, nil)

	m, accessToken, _, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, int64(1), m.ID)
	require.NotEmpty(t, accessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	repo.On("FindByEmail", ctx, "alice@example.com").
		Return(&Member{ID: 1, Email: "alice@example.com", PasswordHash: hash}, nil)

	_, _, _, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, ErrMemberNotFound)

	_, _, _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	refreshToken, err := auth.GenerateRefreshToken(1, "alice@example.com", "member", testSecret)
	require.NoError(t, err)

	repo.On("FindByID", ctx, int64(1)).
		Return(&Member{ID: 1, Email: "alice@example.com", Role: "member"}, nil)

	newAccessToken, m, err := svc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	require.Equal(t, int64(1), m.ID)

	claims, err := auth.ValidateToken(newAccessToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)
	ctx := context.Background()

	accessToken, err := auth.GenerateAccessToken(1, "alice@example.com", "member", testSecret)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(ctx, accessToken)
	require.Error(t, err)
}
