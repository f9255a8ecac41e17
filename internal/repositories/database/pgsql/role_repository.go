package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
)

const roleColumns = `r.role_id, r.name, r.description, r.permissions, r.created_at, r.created_by, r.last_updated_at, r.last_updated_by`

const assignRoleQuery = `
	INSERT INTO user_roles (user_id, role_id, assigned_at, assigned_by)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, role_id) DO NOTHING;
`

// PgxRoleRepository stores roles with their permissions as a text array and user grants in user_roles.
type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(db *pgxpool.Pool) *PgxRoleRepository {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func scanRole(row pgx.Row) (domain.Role, error) {
	var (
		role  domain.Role
		perms []string
	)
	err := row.Scan(
		&role.RoleID,
		&role.Name,
		&role.Description,
		&perms,
		&role.CreatedAt,
		&role.CreatedBy,
		&role.LastUpdatedAt,
		&role.LastUpdatedBy,
	)
	role.Permissions = make([]domain.Permission, len(perms))
	for i, p := range perms {
		role.Permissions[i] = domain.Permission(p)
	}
	return role, err
}

func permissionStrings(perms []domain.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := scanRole(r.Pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.role_id = $1;`, roleID))
	if err != nil {
		return nil, notFoundOr(err, "role "+roleID)
	}
	return &role, nil
}

func (r *PgxRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	role, err := scanRole(r.Pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.name = $1;`, name))
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("role %q", name))
	}
	return &role, nil
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+roleColumns+` FROM roles r ORDER BY r.name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles", err)
	}
	roles, err := collect(rows, func(rows pgx.Rows) (domain.Role, error) { return scanRole(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan role row", err)
	}
	return roles, nil
}

func (r *PgxRoleRepository) FindRolesByUserID(ctx context.Context, userID string) ([]domain.Role, error) {
	query := `
		SELECT ` + roleColumns + `
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles of user "+userID, err)
	}
	roles, err := collect(rows, func(rows pgx.Rows) (domain.Role, error) { return scanRole(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan role row", err)
	}
	return roles, nil
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	query := `
		INSERT INTO roles (role_id, name, description, permissions, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		role.RoleID,
		role.Name,
		role.Description,
		permissionStrings(role.Permissions),
		role.CreatedAt,
		role.CreatedBy,
		role.LastUpdatedAt,
		role.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "role "+role.Name)
	}
	return nil
}

func (r *PgxRoleRepository) ReplaceRolePermissions(ctx context.Context, roleID string, permissions []domain.Permission, updatedBy string, now time.Time) error {
	query := `
		UPDATE roles
		SET permissions = $2, last_updated_at = $3, last_updated_by = $4
		WHERE role_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, roleID, permissionStrings(permissions), now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update permissions of role "+roleID, err)
	}
	return requireRow(tag, "role "+roleID)
}

// AssignRole grants a role. Granting a role the user already holds is a no-op.
func (r *PgxRoleRepository) AssignRole(ctx context.Context, userID, roleID, assignedBy string, now time.Time) error {
	if _, err := r.Pool.Exec(ctx, assignRoleQuery, userID, roleID, now, assignedBy); err != nil {
		return translateWriteError(err, "role assignment")
	}
	return nil
}

func (r *PgxRoleRepository) RevokeRole(ctx context.Context, userID, roleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2;`, userID, roleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to revoke role", err)
	}
	return requireRow(tag, fmt.Sprintf("role %s of user %s", roleID, userID))
}
