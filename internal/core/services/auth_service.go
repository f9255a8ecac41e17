package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
	"github.com/SscSPs/scaffold_erp/internal/utils"
)

const invalidCredentials = "invalid username or password"

// AuthService registers users and issues access tokens.
type AuthService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	roleRepo portsrepo.RoleRepositoryFacade
}

func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, roleRepo portsrepo.RoleRepositoryFacade, opts ...BaseOption) *AuthService {
	return &AuthService{
		BaseService: newBaseService(opts),
		cfg:         cfg,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
	}
}

var _ portssvc.AuthSvc = (*AuthService)(nil)

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	username := normalizeUsername(req.Username)
	if username == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationFailedError("username and name are required")
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("username %q is already taken", username))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up username", slog.String("username", username))
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrWeakPassword) {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to register user", err)
	}

	now := s.now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	granted, err := s.userRepo.RegisterUser(ctx, user, domain.RoleAdmin)
	if err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, err
	}
	if granted != nil {
		user.Roles = []domain.Role{*granted}
		s.LogInfo(ctx, "First user registered as administrator", slog.String("user_id", userID))
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID), slog.String("username", username))
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := normalizeUsername(req.Username)
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(invalidCredentials)
		}
		s.LogError(ctx, err, "Failed to look up user for login", slog.String("username", username))
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError(invalidCredentials)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("user is inactive")
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to issue token", err)
	}

	roles, err := s.roleRepo.FindRolesByUserID(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user roles", slog.String("user_id", user.UserID))
		return nil, err
	}
	user.Roles = roles

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
