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
)

// systemActor is recorded as the actor of operator actions run from the CLI.
const systemActor = "system"

// RoleService manages roles and is the permission authority for every other service.
type RoleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
	userRepo portsrepo.UserReader
}

func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade, userRepo portsrepo.UserReader, opts ...BaseOption) *RoleService {
	svc := &RoleService{BaseService: newBaseService(opts), roleRepo: roleRepo, userRepo: userRepo}
	if svc.Authorizer == nil {
		svc.Authorizer = svc
	}
	return svc
}

var _ portssvc.RoleSvcFacade = (*RoleService)(nil)

// Authorize implements AuthorizerSvc. Inactive or unknown users are always forbidden.
func (s *RoleService) Authorize(ctx context.Context, userID string, perm domain.Permission) error {
	if userID == "" {
		return apperrors.NewUnauthorizedError("missing user")
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbiddenError("unknown user")
		}
		s.LogError(ctx, err, "Failed to load user for authorization", slog.String("user_id", userID))
		return err
	}
	if !user.IsActive {
		return apperrors.NewForbiddenError("user is inactive")
	}

	roles, err := s.roleRepo.FindRolesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load roles for authorization", slog.String("user_id", userID))
		return err
	}
	for _, r := range roles {
		if r.HasPermission(perm) {
			return nil
		}
	}
	return apperrors.NewForbiddenError(fmt.Sprintf("missing permission %s", perm))
}

func validatePermissions(perms []domain.Permission) ([]domain.Permission, error) {
	if len(perms) == 0 {
		return nil, apperrors.NewValidationFailedError("at least one permission is required")
	}
	seen := make(map[domain.Permission]struct{}, len(perms))
	out := make([]domain.Permission, 0, len(perms))
	for _, p := range perms {
		if !p.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown permission %q", p))
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func (s *RoleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest, actorID string) (*domain.Role, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminRoles); err != nil {
		return nil, err
	}
	perms, err := validatePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}
	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, apperrors.NewValidationFailedError("role name is required")
	}

	role := domain.Role{
		RoleID:      uuid.NewString(),
		Name:        name,
		Description: req.Description,
		Permissions: perms,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		s.LogError(ctx, err, "Failed to save role", slog.String("role", name))
		return nil, err
	}
	s.LogInfo(ctx, "Role created", slog.String("role_id", role.RoleID), slog.String("role", name))
	return &role, nil
}

func (s *RoleService) UpdateRolePermissions(ctx context.Context, roleID string, req dto.UpdateRolePermissionsRequest, actorID string) (*domain.Role, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminRoles); err != nil {
		return nil, err
	}
	perms, err := validatePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find role", slog.String("role_id", roleID))
		return nil, err
	}
	if role.Name == domain.RoleAdmin {
		return nil, apperrors.NewConflictError("the ADMIN role cannot be changed")
	}

	now := s.now()
	if err := s.roleRepo.ReplaceRolePermissions(ctx, roleID, perms, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to update role permissions", slog.String("role_id", roleID))
		return nil, err
	}
	role.Permissions = perms
	role.Touch(actorID, now)
	return role, nil
}

func (s *RoleService) GetRole(ctx context.Context, roleID string, actorID string) (*domain.Role, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminRoles); err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find role", slog.String("role_id", roleID))
		return nil, err
	}
	return role, nil
}

func (s *RoleService) ListRoles(ctx context.Context, actorID string) ([]domain.Role, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminRoles); err != nil {
		return nil, err
	}
	roles, err := s.roleRepo.ListRoles(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roles")
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) AssignRole(ctx context.Context, userID, roleID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminRoles); err != nil {
		return err
	}
	return s.assign(ctx, userID, roleID, actorID)
}

func (s *RoleService) assign(ctx context.Context, userID, roleID, actorID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		s.logLookupError(ctx, err, "Failed to find user for role assignment", slog.String("user_id", userID))
		return err
	}
	if _, err := s.roleRepo.FindRoleByID(ctx, roleID); err != nil {
		s.logLookupError(ctx, err, "Failed to find role for assignment", slog.String("role_id", roleID))
		return err
	}
	if err := s.roleRepo.AssignRole(ctx, userID, roleID, actorID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to assign role", slog.String("user_id", userID), slog.String("role_id", roleID))
		return err
	}
	s.LogInfo(ctx, "Role assigned", slog.String("user_id", userID), slog.String("role_id", roleID), slog.String("by", actorID))
	return nil
}

func (s *RoleService) RevokeRole(ctx context.Context, userID, roleID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAdminRoles); err != nil {
		return err
	}
	if err := s.roleRepo.RevokeRole(ctx, userID, roleID); err != nil {
		s.logLookupError(ctx, err, "Failed to revoke role", slog.String("user_id", userID), slog.String("role_id", roleID))
		return err
	}
	s.LogInfo(ctx, "Role revoked", slog.String("user_id", userID), slog.String("role_id", roleID), slog.String("by", actorID))
	return nil
}

func (s *RoleService) AssignRoleByName(ctx context.Context, username, roleName string) error {
	user, err := s.userRepo.FindUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find user", slog.String("username", username))
		return err
	}
	role, err := s.roleRepo.FindRoleByName(ctx, strings.ToUpper(strings.TrimSpace(roleName)))
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find role", slog.String("role", roleName))
		return err
	}
	return s.assign(ctx, user.UserID, role.RoleID, systemActor)
}
