package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUsers(ctx context.Context, page Page) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// RegisterUser inserts the user. When no user existed before, it grants firstUserRole to
	// the new user in the same transaction and returns that role. Later users get a nil role.
	RegisterUser(ctx context.Context, user domain.User, firstUserRole string) (*domain.Role, error)
	// SetUserActive toggles login ability without deleting the user.
	SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// RoleReader defines read operations for roles and assignments.
type RoleReader interface {
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	FindRolesByUserID(ctx context.Context, userID string) ([]domain.Role, error)
}

// RoleWriter defines write operations for roles and assignments.
type RoleWriter interface {
	SaveRole(ctx context.Context, role domain.Role) error
	// ReplaceRolePermissions swaps the full permission set of a role.
	ReplaceRolePermissions(ctx context.Context, roleID string, permissions []domain.Permission, updatedBy string, now time.Time) error
	AssignRole(ctx context.Context, userID, roleID, assignedBy string, now time.Time) error
	RevokeRole(ctx context.Context, userID, roleID string) error
}

type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}
