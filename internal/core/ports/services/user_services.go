package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

// AuthSvc handles self-registration and password login.
type AuthSvc interface {
	// Register creates a user. The first user ever registered becomes ADMIN.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login checks credentials and issues a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetMe(ctx context.Context, actorID string) (*domain.User, error)
	GetUser(ctx context.Context, userID string, actorID string) (*domain.User, error)
	ListUsers(ctx context.Context, params dto.ListParams, actorID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	DeactivateUser(ctx context.Context, userID string, actorID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

// AuthorizerSvc decides whether a user holds a permission.
type AuthorizerSvc interface {
	// Authorize returns nil when one of the user's roles grants perm, ErrForbidden otherwise.
	Authorize(ctx context.Context, userID string, perm domain.Permission) error
}

type RoleReaderSvc interface {
	GetRole(ctx context.Context, roleID string, actorID string) (*domain.Role, error)
	ListRoles(ctx context.Context, actorID string) ([]domain.Role, error)
}

type RoleWriterSvc interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest, actorID string) (*domain.Role, error)
	UpdateRolePermissions(ctx context.Context, roleID string, req dto.UpdateRolePermissionsRequest, actorID string) (*domain.Role, error)
	AssignRole(ctx context.Context, userID, roleID string, actorID string) error
	RevokeRole(ctx context.Context, userID, roleID string, actorID string) error

	// AssignRoleByName is the operator path used by the CLI; it skips the permission check.
	AssignRoleByName(ctx context.Context, username, roleName string) error
}

type RoleSvcFacade interface {
	RoleReaderSvc
	RoleWriterSvc
	AuthorizerSvc
}
