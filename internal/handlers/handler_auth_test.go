package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type AuthHandlerTestSuite struct {
	apiSuite
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestHealth() {
	w := s.doAs("", http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *AuthHandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{Username: "budi", Name: "Budi Santoso", Password: "s3cret-pass"}
	s.authService.On("Register", mock.Anything, req).Return(&domain.User{
		UserID:   testUserID,
		Username: "budi",
		Name:     "Budi Santoso",
		IsActive: true,
		Roles:    []domain.Role{{Name: domain.RoleAdmin, Permissions: []domain.Permission{domain.PermissionAll}}},
	}, nil).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/register", req)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.UserResponse
	s.decode(w, &resp)
	s.Equal(testUserID, resp.UserID)
	s.Equal([]string{domain.RoleAdmin}, resp.Roles)
}

func (s *AuthHandlerTestSuite) TestRegister_InvalidBody() {
	w := s.doAs("", http.MethodPost, "/api/v1/auth/register", `{"username":"b","password":"short"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "Invalid request format")
	s.authService.AssertNotCalled(s.T(), "Register", mock.Anything, mock.Anything)
}

func (s *AuthHandlerTestSuite) TestRegister_DuplicateUsername() {
	s.authService.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewDuplicateError("username 'budi' is already taken")).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/register",
		dto.RegisterRequest{Username: "budi", Name: "Budi", Password: "s3cret-pass"})

	s.Equal(http.StatusConflict, w.Code)
	s.Contains(s.errorMessage(w), "already taken")
}

func (s *AuthHandlerTestSuite) TestLogin_Success() {
	req := dto.LoginRequest{Username: "budi", Password: "s3cret-pass"}
	expires := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.authService.On("Login", mock.Anything, req).Return(&dto.LoginResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: expires,
		User:      dto.UserResponse{UserID: testUserID, Username: "budi"},
	}, nil).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", req)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	s.decode(w, &resp)
	s.Equal("signed.jwt.token", resp.Token)
	s.True(expires.Equal(resp.ExpiresAt))
	s.NotEmpty(w.Header().Get("X-RateLimit-Limit"))
}

func (s *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	s.authService.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnauthorizedError("invalid username or password")).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "budi", Password: "nope"})

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(s.errorMessage(w), "invalid username or password")
}

func (s *AuthHandlerTestSuite) TestLogin_RateLimited() {
	s.authService.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnauthorizedError("invalid username or password")).Times(3)

	for i := 0; i < 3; i++ {
		w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "budi", Password: "guess"})
		s.Equal(http.StatusUnauthorized, w.Code)
	}

	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "budi", Password: "guess"})
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *AuthHandlerTestSuite) TestProtectedRouteRequiresToken() {
	w := s.doAs("", http.MethodGet, "/api/v1/accounting/accounts", nil)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.accountService.AssertNotCalled(s.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}
