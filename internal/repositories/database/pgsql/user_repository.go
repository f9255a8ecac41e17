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
	"github.com/SscSPs/scaffold_erp/internal/models"
	"github.com/SscSPs/scaffold_erp/internal/utils/mapping"
)

const userColumns = `user_id, username, password_hash, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const insertUserQuery = `
	INSERT INTO users (` + userColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// lockUsersQuery uses a mode that conflicts with itself, so registrations run one at a time
// and only one of them can see an empty users table.
const lockUsersQuery = `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE;`

func (r *PgxUserRepository) RegisterUser(ctx context.Context, user domain.User, firstUserRole string) (*domain.Role, error) {
	var granted *domain.Role
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		granted, err = registerUser(ctx, tx, mapping.ToModelUser(user), firstUserRole)
		return err
	})
	if err != nil {
		return nil, err
	}
	return granted, nil
}

// registerUser does the work of RegisterUser on q, which must be a transaction.
func registerUser(ctx context.Context, q querier, m models.User, firstUserRole string) (*domain.Role, error) {
	if _, err := q.Exec(ctx, lockUsersQuery); err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock users table", err)
	}
	var hasUsers bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users);`).Scan(&hasUsers); err != nil {
		return nil, apperrors.NewAppError(500, "failed to check for existing users", err)
	}

	_, err := q.Exec(ctx, insertUserQuery,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateWriteError(err, "user "+m.Username)
	}
	if hasUsers {
		return nil, nil
	}

	role, err := scanRole(q.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.name = $1;`, firstUserRole))
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("role %q", firstUserRole))
	}
	if _, err := q.Exec(ctx, assignRoleQuery, m.UserID, role.RoleID, m.CreatedAt, m.UserID); err != nil {
		return nil, translateWriteError(err, "role assignment")
	}
	return &role, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID))
	if err != nil {
		return nil, notFoundOr(err, "user "+userID)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByUsername matches the already normalized (lower case) username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1;`, username))
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %q", username))
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, page portsrepo.Page) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, user_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	users, err := collect(rows, func(rows pgx.Rows) (models.User, error) { return scanUser(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan user row", err)
	}
	return mapping.ToDomainUsers(users), nil
}

func (r *PgxUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, active, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user "+userID, err)
	}
	return requireRow(tag, "user "+userID)
}
