package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// accountActivityQuery aggregates POSTED and REVERSED lines per account up to $1, from $2 when set.
const accountActivityQuery = `
	SELECT
		a.account_id,
		a.code,
		a.name AS account_name,
		a.account_type,
		SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END) AS total_debit,
		SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END) AS total_credit
	FROM transactions t
	JOIN accounts a ON t.account_id = a.account_id
	JOIN journals j ON t.journal_id = j.journal_id
	WHERE j.status IN ('POSTED', 'REVERSED')
		AND j.journal_date <= $1
		AND ($2::date IS NULL OR j.journal_date >= $2)
	GROUP BY a.account_id, a.code, a.name, a.account_type
	ORDER BY a.code
`

// GetAccountActivity sums posted debits and credits per account, deactivated accounts included.
// A reversed journal and its reversal both count, so together they net to zero.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, accountActivityQuery, to, from)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error querying account activity", err)
	}
	result, err := collect(rows, func(rows pgx.Rows) (domain.AccountActivity, error) {
		var row domain.AccountActivity
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.AccountName,
			&accountType,
			&row.TotalDebit,
			&row.TotalCredit,
		)
		row.AccountType = domain.AccountType(accountType)
		return row, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "error scanning account activity", err)
	}
	return result, nil
}

// GetLedgerLines returns posted lines between from and to for one account or for all of them.
func (r *reportingRepository) GetLedgerLines(ctx context.Context, accountID *string, from, to time.Time) ([]portsrepo.LedgerLineRow, error) {
	query := `
		SELECT
			a.account_id,
			t.transaction_id,
			j.journal_id,
			j.journal_number,
			j.journal_date,
			j.description,
			j.reference,
			CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END AS debit,
			CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END AS credit,
			t.created_at
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.status IN ('POSTED', 'REVERSED')
			AND j.journal_date >= $1
			AND j.journal_date <= $2
			AND ($3::text IS NULL OR a.account_id = $3)
		ORDER BY a.code, j.journal_date, t.created_at, t.transaction_id
	`

	rows, err := r.Pool.Query(ctx, query, from, to, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error querying ledger lines", err)
	}
	result, err := collect(rows, func(rows pgx.Rows) (portsrepo.LedgerLineRow, error) {
		var row portsrepo.LedgerLineRow
		err := rows.Scan(
			&row.AccountID,
			&row.TransactionID,
			&row.JournalID,
			&row.JournalNumber,
			&row.JournalDate,
			&row.Description,
			&row.Reference,
			&row.Debit,
			&row.Credit,
			&row.CreatedAt,
		)
		return row, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "error scanning ledger lines", err)
	}
	return result, nil
}
