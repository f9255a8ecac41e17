package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
	"github.com/SscSPs/scaffold_erp/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	roleRepo *MockRoleRepository
	service  *services.AuthService
	ctx      context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.roleRepo = new(MockRoleRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "scaffold-erp-test",
	}
	s.service = services.NewAuthService(cfg, s.userRepo, s.roleRepo)
	s.ctx = context.Background()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_FirstUserBecomesAdmin() {
	admin := &domain.Role{RoleID: "role-admin", Name: domain.RoleAdmin, Permissions: []domain.Permission{domain.PermissionAll}}

	s.userRepo.On("FindUserByUsername", s.ctx, "alice").Return(nil, apperrors.ErrNotFound)
	s.userRepo.On("RegisterUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "alice" && u.IsActive && u.PasswordHash != "" && u.PasswordHash != "supersecret"
	}), domain.RoleAdmin).Return(admin, nil)

	user, err := s.service.Register(s.ctx, dto.RegisterRequest{Username: "  Alice ", Name: "Alice", Password: "supersecret"})

	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Require().Len(user.Roles, 1)
	s.Equal(domain.RoleAdmin, user.Roles[0].Name)
	s.userRepo.AssertExpectations(s.T())
	// The grant happens inside RegisterUser's transaction, never as a separate call.
	s.roleRepo.AssertNotCalled(s.T(), "FindRoleByName", mock.Anything, mock.Anything)
	s.roleRepo.AssertNotCalled(s.T(), "AssignRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRegister_LaterUserGetsNoRole() {
	s.userRepo.On("FindUserByUsername", s.ctx, "bob").Return(nil, apperrors.ErrNotFound)
	s.userRepo.On("RegisterUser", s.ctx, mock.AnythingOfType("domain.User"), domain.RoleAdmin).Return(nil, nil)

	user, err := s.service.Register(s.ctx, dto.RegisterRequest{Username: "bob", Name: "Bob", Password: "supersecret"})

	s.Require().NoError(err)
	s.Empty(user.Roles)
	s.roleRepo.AssertNotCalled(s.T(), "AssignRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRegister_FailedGrantReturnsError() {
	s.userRepo.On("FindUserByUsername", s.ctx, "alice").Return(nil, apperrors.ErrNotFound)
	s.userRepo.On("RegisterUser", s.ctx, mock.AnythingOfType("domain.User"), domain.RoleAdmin).
		Return(nil, fmt.Errorf("%w: role %q", apperrors.ErrNotFound, domain.RoleAdmin))

	user, err := s.service.Register(s.ctx, dto.RegisterRequest{Username: "alice", Name: "Alice", Password: "supersecret"})

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	s.userRepo.On("FindUserByUsername", s.ctx, "alice").Return(&domain.User{UserID: "u1", Username: "alice"}, nil)

	_, err := s.service.Register(s.ctx, dto.RegisterRequest{Username: "alice", Name: "Alice", Password: "supersecret"})

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.userRepo.AssertNotCalled(s.T(), "RegisterUser", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRegister_WeakPassword() {
	s.userRepo.On("FindUserByUsername", s.ctx, "carol").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.Register(s.ctx, dto.RegisterRequest{Username: "carol", Name: "Carol", Password: "short"})

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	hash, err := utils.HashPassword("supersecret")
	s.Require().NoError(err)
	user := &domain.User{UserID: "u1", Username: "alice", Name: "Alice", PasswordHash: hash, IsActive: true}
	roles := []domain.Role{{RoleID: "r1", Name: "ACCOUNTANT"}}

	s.userRepo.On("FindUserByUsername", s.ctx, "alice").Return(user, nil)
	s.roleRepo.On("FindRolesByUserID", s.ctx, "u1").Return(roles, nil)

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "Alice", Password: "supersecret"})

	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.True(resp.ExpiresAt.After(time.Now()))
	s.Equal("u1", resp.User.UserID)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret-key-that-is-long-enough")
	s.Require().NoError(err)
	s.Equal("u1", claims.Subject)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	hash, err := utils.HashPassword("supersecret")
	s.Require().NoError(err)
	s.userRepo.On("FindUserByUsername", s.ctx, "alice").Return(&domain.User{UserID: "u1", PasswordHash: hash, IsActive: true}, nil)

	_, err = s.service.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "not-the-password"})

	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.userRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "ghost", Password: "whatever1"})

	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogin_InactiveUser() {
	hash, err := utils.HashPassword("supersecret")
	s.Require().NoError(err)
	s.userRepo.On("FindUserByUsername", s.ctx, "alice").Return(&domain.User{UserID: "u1", PasswordHash: hash}, nil)

	_, err = s.service.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "supersecret"})

	s.ErrorIs(err, apperrors.ErrUnauthorized)
}
