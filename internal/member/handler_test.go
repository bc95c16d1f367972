package member

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*Member), args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) Login(ctx context.Context, req LoginRequest) (*Member, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*Member), args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) GetByID(ctx context.Context, memberID int64) (*Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockService) RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*Member), args.Error(2)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.GET("/me", func(c *gin.Context) {
		c.Set("member_id", int64(1))
		c.Next()
	}, h.GetMe)
	return r
}

func TestRegisterHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("Register", mock.Anything, mock.AnythingOfType("member.RegisterRequest")).
		Return(&Member{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "member"}, "access", "refresh", nil)

	body, _ := json.Marshal(RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "access", resp.AccessToken)
	require.Equal(t, "alice@example.com", resp.Member.Email)
}

func TestRegisterHandlerEmailExists(t *testing.T) {
	svc := new(MockService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, "", "", ErrEmailExists)

	body, _ := json.Marshal(RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandlerShortPassword(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	body, _ := json.Marshal(RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "short"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	svc := new(MockService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, "", "", ErrInvalidCredentials)

	body, _ := json.Marshal(LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMeHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("GetByID", mock.Anything, int64(1)).
		Return(&Member{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil)

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var m Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	require.Equal(t, "Alice", m.Name)
}

func TestRefreshTokenHandlerMissingToken(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RefreshToken", mock.Anything, mock.Anything)
}
