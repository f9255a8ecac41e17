package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/utils/pagination"
)

type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	roleRepo portsrepo.RoleReader
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, roleRepo portsrepo.RoleReader, opts ...BaseOption) *UserService {
	return &UserService{BaseService: newBaseService(opts), userRepo: userRepo, roleRepo: roleRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		return nil, err
	}
	roles, err := s.roleRepo.FindRolesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user roles", slog.String("user_id", userID))
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// GetMe returns the caller's own profile; no permission is required.
func (s *UserService) GetMe(ctx context.Context, actorID string) (*domain.User, error) {
	return s.loadUser(ctx, actorID)
}

func (s *UserService) GetUser(ctx context.Context, userID string, actorID string) (*domain.User, error) {
	if userID != actorID {
		if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminUsers); err != nil {
			return nil, err
		}
	}
	return s.loadUser(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context, params dto.ListParams, actorID string) ([]domain.User, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminUsers); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindUsers(ctx, toPage(params))
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, userID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminUsers); err != nil {
		return err
	}
	if userID == actorID {
		return apperrors.NewValidationFailedError("users cannot deactivate themselves")
	}
	if err := s.userRepo.SetUserActive(ctx, userID, false, actorID, s.now()); err != nil {
		s.logLookupError(ctx, err, "Failed to deactivate user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deactivated", slog.String("user_id", userID), slog.String("by", actorID))
	return nil
}

// toPage converts list query parameters into a repository page.
func toPage(p dto.ListParams) portsrepo.Page {
	return portsrepo.Page{Limit: pagination.NormalizeLimit(p.Limit), Offset: max(p.Offset, 0)}
}
