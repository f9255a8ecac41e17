package pgsql

import (
	"context"
	"fmt"
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
	"github.com/SscSPs/scaffold_erp/internal/utils/accounting"
	"github.com/SscSPs/scaffold_erp/internal/utils/mapping"
	"github.com/SscSPs/scaffold_erp/internal/utils/pagination"
)

const journalColumns = `journal_id, journal_number, journal_date, description, reference, source_type, source_id,
	currency_code, status, original_journal_id, reversing_journal_id, amount, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `t.transaction_id, t.journal_id, t.account_id, t.amount, t.transaction_type, t.currency_code, t.notes,
	t.running_balance, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalNumber,
		&m.JournalDate,
		&m.Description,
		&m.Reference,
		&m.SourceType,
		&m.SourceID,
		&m.CurrencyCode,
		&m.Status,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.Amount,
		&m.PostedAt,
		&m.PostedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanTransaction(row pgx.Row, extra ...any) (models.Transaction, error) {
	var m models.Transaction
	dest := []any{
		&m.TransactionID,
		&m.JournalID,
		&m.AccountID,
		&m.Amount,
		&m.TransactionType,
		&m.CurrencyCode,
		&m.Notes,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
	err := row.Scan(append(dest, extra...)...)
	return m, err
}

func insertJournalHeader(ctx context.Context, tx pgx.Tx, m models.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.JournalNumber,
		m.JournalDate,
		m.Description,
		m.Reference,
		m.SourceType,
		m.SourceID,
		m.CurrencyCode,
		m.Status,
		m.OriginalJournalID,
		m.ReversingJournalID,
		m.Amount,
		m.PostedAt,
		m.PostedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "journal "+m.JournalNumber)
	}
	return nil
}

// insertLines stores the lines in the given order. line_no keeps that order on reads.
func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, journal_id, line_no, account_id, amount, transaction_type, currency_code, notes,
			running_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for i, line := range lines {
		m := mapping.ToModelTransaction(line)
		batch.Queue(query,
			m.TransactionID,
			m.JournalID,
			i+1,
			m.AccountID,
			m.Amount,
			m.TransactionType,
			m.CurrencyCode,
			m.Notes,
			m.RunningBalance,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateWriteError(err, "journal lines")
	}
	return nil
}

// applyPosting locks the accounts touched by lines, moves their balances and returns the
// lines with running balances stamped in line order.
func (r *PgxJournalRepository) applyPosting(ctx context.Context, tx pgx.Tx, lines []domain.Transaction, userID string, now time.Time) ([]domain.Transaction, error) {
	accountIDs := make([]string, len(lines))
	for i, l := range lines {
		accountIDs[i] = l.AccountID
	}

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	types := make(map[string]domain.AccountType, len(locked))
	running := make(map[string]decimal.Decimal, len(locked))
	for id, acc := range locked {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
		types[id] = acc.AccountType
		running[id] = acc.Balance
	}

	changes, err := accounting.BalanceChanges(lines, types)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute balance changes", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, userID, now); err != nil {
		return nil, err
	}

	stamped := make([]domain.Transaction, len(lines))
	for i, line := range lines {
		signed, err := accounting.CalculateSignedAmount(line, types[line.AccountID])
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to sign amount of line "+line.TransactionID, err)
		}
		balance := running[line.AccountID].Add(signed)
		running[line.AccountID] = balance
		stamped[i] = line
		stamped[i].RunningBalance = &balance
	}
	return stamped, nil
}

// lockJournal selects the journal header FOR UPDATE inside tx.
func lockJournal(ctx context.Context, tx pgx.Tx, journalID string) (*models.Journal, error) {
	m, err := scanJournal(tx.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1 FOR UPDATE;`, journalID))
	if err != nil {
		return nil, notFoundOr(err, "journal "+journalID)
	}
	return &m, nil
}

func findLines(ctx context.Context, q querier, journalID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.journal_id = $1 ORDER BY t.line_no;`
	rows, err := q.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for journal "+journalID, err)
	}
	lines, err := collect(rows, func(rows pgx.Rows) (models.Transaction, error) { return scanTransaction(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions for journal "+journalID, err)
	}
	return mapping.ToDomainTransactionSlice(lines), nil
}

// SaveDraftJournal inserts a DRAFT journal and its lines.
func (r *PgxJournalRepository) SaveDraftJournal(ctx context.Context, journal domain.Journal) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertJournalHeader(ctx, tx, mapping.ToModelJournal(journal)); err != nil {
			return err
		}
		return insertLines(ctx, tx, journal.Transactions)
	})
}

// ReplaceDraftJournal updates the header of a draft and swaps all of its lines.
func (r *PgxJournalRepository) ReplaceDraftJournal(ctx context.Context, journal domain.Journal) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		stored, err := lockJournal(ctx, tx, journal.JournalID)
		if err != nil {
			return err
		}
		if domain.JournalStatus(stored.Status) != domain.Draft {
			return fmt.Errorf("%w: journal %s is %s", apperrors.ErrConflict, stored.JournalNumber, stored.Status)
		}

		m := mapping.ToModelJournal(journal)
		_, err = tx.Exec(ctx, `
			UPDATE journals
			SET journal_date = $2, description = $3, reference = $4, amount = $5, last_updated_at = $6, last_updated_by = $7
			WHERE journal_id = $1;
		`, m.JournalID, m.JournalDate, m.Description, m.Reference, m.Amount, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return translateWriteError(err, "journal "+m.JournalID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE journal_id = $1;`, m.JournalID); err != nil {
			return apperrors.NewAppError(500, "failed to clear lines of journal "+m.JournalID, err)
		}
		return insertLines(ctx, tx, journal.Transactions)
	})
}

// DeleteDraftJournal removes a draft; its lines go with it through ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteDraftJournal(ctx context.Context, journalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1 AND status = 'DRAFT';`, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindJournalByID(ctx, journalID); err != nil {
			return err
		}
		return fmt.Errorf("%w: journal %s is not a draft", apperrors.ErrConflict, journalID)
	}
	return nil
}

// PostJournal posts a stored draft and returns it with stamped running balances.
func (r *PgxJournalRepository) PostJournal(ctx context.Context, journalID string, userID string, now time.Time) (*domain.Journal, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		stored, err := lockJournal(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if domain.JournalStatus(stored.Status) != domain.Draft {
			return fmt.Errorf("%w: journal %s is %s", apperrors.ErrConflict, stored.JournalNumber, stored.Status)
		}
		lines, err := findLines(ctx, tx, journalID)
		if err != nil {
			return err
		}
		stamped, err := r.applyPosting(ctx, tx, lines, userID, now)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, line := range stamped {
			batch.Queue(`UPDATE transactions SET running_balance = $2, last_updated_at = $3, last_updated_by = $4 WHERE transaction_id = $1;`,
				line.TransactionID, line.RunningBalance, now, userID)
		}
		batch.Queue(`UPDATE journals SET status = 'POSTED', posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3 WHERE journal_id = $1;`,
			journalID, now, userID)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to post journal "+journalID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindJournalByID(ctx, journalID)
}

// SavePostedJournal inserts a journal already in POSTED status and applies it to the ledger.
// A second journal for the same source violates journals_source_uidx and yields ErrDuplicate.
func (r *PgxJournalRepository) SavePostedJournal(ctx context.Context, journal domain.Journal) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return r.insertPosted(ctx, tx, journal)
	})
}

func (r *PgxJournalRepository) insertPosted(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	if err := insertJournalHeader(ctx, tx, mapping.ToModelJournal(journal)); err != nil {
		return err
	}
	userID := journal.CreatedBy
	if journal.PostedBy != nil {
		userID = *journal.PostedBy
	}
	stamped, err := r.applyPosting(ctx, tx, journal.Transactions, userID, journal.CreatedAt)
	if err != nil {
		return err
	}
	return insertLines(ctx, tx, stamped)
}

// ReverseJournal posts reversal and marks the original REVERSED with a link to it.
func (r *PgxJournalRepository) ReverseJournal(ctx context.Context, originalJournalID string, reversal domain.Journal) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		original, err := lockJournal(ctx, tx, originalJournalID)
		if err != nil {
			return err
		}
		if domain.JournalStatus(original.Status) != domain.Posted || original.OriginalJournalID != nil {
			return fmt.Errorf("%w: journal %s cannot be reversed in status %s", apperrors.ErrConflict, original.JournalNumber, original.Status)
		}
		if err := r.insertPosted(ctx, tx, reversal); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE journals
			SET status = 'REVERSED', reversing_journal_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE journal_id = $1;
		`, originalJournalID, reversal.JournalID, reversal.CreatedAt, reversal.CreatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark journal "+originalJournalID+" reversed", err)
		}
		return nil
	})
}

// FindJournalByID retrieves a journal with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	m, err := scanJournal(r.Pool.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1;`, journalID))
	if err != nil {
		return nil, notFoundOr(err, "journal "+journalID)
	}
	return r.withLines(ctx, m)
}

// FindJournalBySource returns the journal created for a business record, ignoring reversals.
func (r *PgxJournalRepository) FindJournalBySource(ctx context.Context, sourceType domain.JournalSourceType, sourceID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE source_type = $1 AND source_id = $2 AND original_journal_id IS NULL;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, string(sourceType), sourceID))
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("journal for %s %s", sourceType, sourceID))
	}
	return r.withLines(ctx, m)
}

func (r *PgxJournalRepository) withLines(ctx context.Context, m models.Journal) (*domain.Journal, error) {
	journal := mapping.ToDomainJournal(m)
	lines, err := findLines(ctx, r.Pool, journal.JournalID)
	if err != nil {
		return nil, err
	}
	journal.Transactions = lines
	return &journal, nil
}

// ListJournals retrieves journals newest first using token-based pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.Journal, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		conds = append(conds, "status = "+arg(string(*filter.Status)))
	}
	if filter.SourceType != nil {
		conds = append(conds, "source_type = "+arg(string(*filter.SourceType)))
	}
	if filter.FromDate != nil {
		conds = append(conds, "journal_date >= "+arg(*filter.FromDate))
	}
	if filter.ToDate != nil {
		conds = append(conds, "journal_date <= "+arg(*filter.ToDate))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		conds = append(conds, fmt.Sprintf("(journal_date, created_at, journal_id) < (%s, %s, %s)",
			arg(cursor.SortDate), arg(cursor.CreatedAt), arg(cursor.ID)))
	}

	query := `SELECT ` + journalColumns + ` FROM journals`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY journal_date DESC, created_at DESC, journal_id DESC LIMIT " + arg(limit+1) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	modelJournals, err := collect(rows, func(rows pgx.Rows) (models.Journal, error) { return scanJournal(rows) })
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan journal rows", err)
	}

	page, next := pagination.Page(modelJournals, limit, func(m models.Journal) pagination.Cursor {
		return pagination.Cursor{SortDate: m.JournalDate, CreatedAt: m.CreatedAt, ID: m.JournalID}
	})
	journals := make([]domain.Journal, len(page))
	for i, m := range page {
		journals[i] = mapping.ToDomainJournal(m)
	}
	return journals, next, nil
}

// ListTransactionsByAccountID lists lines of posted (and later reversed) journals for an account,
// newest first. Drafts are excluded since they have not touched the balance.
func (r *PgxJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	args := []any{accountID}
	query := `
		SELECT ` + transactionColumns + `, j.journal_date
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE t.account_id = $1 AND j.status IN ('POSTED', 'REVERSED')`

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		args = append(args, cursor.SortDate, cursor.CreatedAt, cursor.ID)
		query += ` AND (j.journal_date, t.created_at, t.transaction_id) < ($2, $3, $4)`
	}
	args = append(args, limit+1)
	query += ` ORDER BY j.journal_date DESC, t.created_at DESC, t.transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	lines, err := collect(rows, func(rows pgx.Rows) (models.Transaction, error) {
		var journalDate time.Time
		m, err := scanTransaction(rows, &journalDate)
		m.JournalDate = journalDate
		return m, err
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transaction rows for account "+accountID, err)
	}

	page, next := pagination.Page(lines, limit, func(m models.Transaction) pagination.Cursor {
		return pagination.Cursor{SortDate: m.JournalDate, CreatedAt: m.CreatedAt, ID: m.TransactionID}
	})
	return mapping.ToDomainTransactionSlice(page), next, nil
}
