package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	"github.com/SscSPs/scaffold_erp/internal/models"
	"github.com/SscSPs/scaffold_erp/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, account_type, parent_account_id, description, is_active, is_system, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.Description,
		&m.IsActive,
		&m.IsSystem,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanAccountRows(rows pgx.Rows) (domain.Account, error) {
	m, err := scanAccount(rows)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insertAccount(ctx, r.Pool, mapping.ToModelAccount(account))
}

func insertAccount(ctx context.Context, q querier, m models.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := q.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.IsSystem,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.Code)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFoundOr(err, "account "+accountID)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		return nil, notFoundOr(err, "account with code "+code)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// It's possible not all requested IDs are found; the caller checks the map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	return r.accountMap(ctx, r.Pool, query, accountIDs, func(a domain.Account) string { return a.AccountID })
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1);`
	return r.accountMap(ctx, r.Pool, query, codes, func(a domain.Account) string { return a.Code })
}

func (r *PgxAccountRepository) accountMap(ctx context.Context, q querier, query string, keys []string, keyOf func(domain.Account) string) (map[string]domain.Account, error) {
	rows, err := q.Query(ctx, query, keys)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	accounts, err := collect(rows, scanAccountRows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan account rows", err)
	}
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[keyOf(a)] = a
	}
	return accountsMap, nil
}

// ListAccounts returns the chart ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	var (
		conds []string
		args  []any
	)
	if filter.AccountType != nil {
		args = append(args, string(*filter.AccountType))
		conds = append(conds, "account_type = $"+strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, "is_active = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY code;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	accounts, err := collect(rows, scanAccountRows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan account rows", err)
	}
	return accounts, nil
}

// HasTransactions reports whether any journal line references the account.
func (r *PgxAccountRepository) HasTransactions(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check transactions of account "+accountID, err)
	}
	return exists, nil
}

// UpdateAccount updates the editable fields of an account.
// Balance, code and the system flag are never changed here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, parent_account_id = $4, description = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.AccountID)
	}
	return requireRow(tag, "account "+m.AccountID)
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already inactive.
		if _, err := r.FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}
	return nil
}

// SeedAccounts inserts the accounts whose code is not taken yet, in one DB transaction.
// accounts must list parents before their children.
func (r *PgxAccountRepository) SeedAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	inserted := 0
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO accounts (` + accountColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (code) DO NOTHING;
		`
		for _, a := range accounts {
			m := mapping.ToModelAccount(a)
			tag, err := tx.Exec(ctx, query,
				m.AccountID, m.Code, m.Name, m.AccountType, m.ParentAccountID, m.Description,
				m.IsActive, m.IsSystem, m.Balance, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			)
			if err != nil {
				return translateWriteError(err, "seed account "+m.Code)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Rows are locked in account_id order so concurrent postings cannot deadlock.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	accountsMap, err := r.accountMap(ctx, tx, query, accountIDs, func(a domain.Account) string { return a.AccountID })
	if err != nil {
		return nil, err
	}

	if len(accountsMap) != len(uniqueStrings(accountIDs)) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", slog.Any("missing_accounts", missing))
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return accountsMap, nil
}

// UpdateAccountBalancesInTx updates balances for multiple accounts within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < len(accountIDs); i++ {
		tag, err := br.Exec()
		switch {
		case err != nil && batchErr == nil:
			batchErr = apperrors.NewAppError(500, "failed to update balance for account "+accountIDs[i], err)
		case err == nil && tag.RowsAffected() == 0 && batchErr == nil:
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = apperrors.NewAppError(500, "failed to close balance update batch", err)
	}
	return batchErr
}
