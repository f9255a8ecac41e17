package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
)

const incentiveColumns = `incentive_id, employee_id, period, amount, reason, salary_id, created_at, created_by, last_updated_at, last_updated_by`

const salaryColumns = `salary_id, employee_id, period, base_amount, incentive_amount, deduction_amount, net_amount,
	absent_days, unpaid_leave_days, status, paid_at, payment_method, created_at, created_by, last_updated_at, last_updated_by`

// PgxPayrollRepository stores incentives and salaries.
type PgxPayrollRepository struct {
	BaseRepository
}

func newPgxPayrollRepository(db *pgxpool.Pool) *PgxPayrollRepository {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: db}}
}

var (
	_ portsrepo.IncentiveRepository = (*PgxPayrollRepository)(nil)
	_ portsrepo.SalaryRepository    = (*PgxPayrollRepository)(nil)
)

func scanIncentive(row pgx.Row) (domain.Incentive, error) {
	var i domain.Incentive
	err := row.Scan(
		&i.IncentiveID,
		&i.EmployeeID,
		&i.Period,
		&i.Amount,
		&i.Reason,
		&i.SalaryID,
		&i.CreatedAt,
		&i.CreatedBy,
		&i.LastUpdatedAt,
		&i.LastUpdatedBy,
	)
	return i, err
}

func scanSalary(row pgx.Row) (domain.Salary, error) {
	var s domain.Salary
	err := row.Scan(
		&s.SalaryID,
		&s.EmployeeID,
		&s.Period,
		&s.BaseAmount,
		&s.IncentiveAmount,
		&s.DeductionAmount,
		&s.NetAmount,
		&s.AbsentDays,
		&s.UnpaidLeaveDays,
		&s.Status,
		&s.PaidAt,
		&s.PaymentMethod,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxPayrollRepository) SaveIncentive(ctx context.Context, i domain.Incentive) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO incentives (`+incentiveColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		i.IncentiveID, i.EmployeeID, i.Period, i.Amount, i.Reason, i.SalaryID, i.CreatedAt, i.CreatedBy, i.LastUpdatedAt, i.LastUpdatedBy)
	if err != nil {
		return translateWriteError(err, "incentive "+i.IncentiveID)
	}
	return nil
}

func (r *PgxPayrollRepository) FindIncentiveByID(ctx context.Context, incentiveID string) (*domain.Incentive, error) {
	i, err := scanIncentive(r.Pool.QueryRow(ctx, `SELECT `+incentiveColumns+` FROM incentives WHERE incentive_id = $1;`, incentiveID))
	if err != nil {
		return nil, notFoundOr(err, "incentive "+incentiveID)
	}
	return &i, nil
}

func (r *PgxPayrollRepository) ListIncentives(ctx context.Context, inf portsrepo.IncentiveFilter) ([]domain.Incentive, error) {
	f := &filter{}
	if inf.EmployeeID != nil {
		f.add("employee_id = %s", *inf.EmployeeID)
	}
	if inf.Period != nil {
		f.add("period = %s", *inf.Period)
	}
	query := `SELECT ` + incentiveColumns + ` FROM incentives` + f.where() + ` ORDER BY period DESC, created_at DESC` + f.page(inf.Page) + `;`
	return r.queryIncentives(ctx, query, f.args...)
}

func (r *PgxPayrollRepository) ListUnsettledIncentives(ctx context.Context, employeeID, period string) ([]domain.Incentive, error) {
	query := `
		SELECT ` + incentiveColumns + `
		FROM incentives
		WHERE employee_id = $1 AND period = $2 AND salary_id IS NULL
		ORDER BY created_at;
	`
	return r.queryIncentives(ctx, query, employeeID, period)
}

func (r *PgxPayrollRepository) queryIncentives(ctx context.Context, query string, args ...any) ([]domain.Incentive, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query incentives", err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.Incentive, error) { return scanIncentive(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan incentive row", err)
	}
	return list, nil
}

func (r *PgxPayrollRepository) DeleteUnsettledIncentive(ctx context.Context, incentiveID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM incentives WHERE incentive_id = $1 AND salary_id IS NULL;`, incentiveID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete incentive "+incentiveID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindIncentiveByID(ctx, incentiveID); err != nil {
			return err
		}
		return fmt.Errorf("%w: incentive %s is already settled in a salary", apperrors.ErrConflict, incentiveID)
	}
	return nil
}

// SaveSalary fails with ErrConflict when one of the incentives was settled by someone else meanwhile.
func (r *PgxPayrollRepository) SaveSalary(ctx context.Context, s domain.Salary, incentiveIDs []string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO salaries (`+salaryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
			s.SalaryID, s.EmployeeID, s.Period, s.BaseAmount, s.IncentiveAmount, s.DeductionAmount, s.NetAmount,
			s.AbsentDays, s.UnpaidLeaveDays, s.Status, s.PaidAt, s.PaymentMethod, s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy)
		if err != nil {
			return translateWriteError(err, fmt.Sprintf("salary of employee %s for %s", s.EmployeeID, s.Period))
		}
		if len(incentiveIDs) == 0 {
			return nil
		}
		ids := uniqueStrings(incentiveIDs)
		tag, err := tx.Exec(ctx, `
			UPDATE incentives SET salary_id = $1, last_updated_at = $2, last_updated_by = $3
			WHERE incentive_id = ANY($4) AND salary_id IS NULL;`,
			s.SalaryID, s.CreatedAt, s.CreatedBy, ids)
		if err != nil {
			return apperrors.NewAppError(500, "failed to settle incentives", err)
		}
		if int(tag.RowsAffected()) != len(ids) {
			return fmt.Errorf("%w: some incentives of %s were settled concurrently", apperrors.ErrConflict, s.Period)
		}
		return nil
	})
}

func (r *PgxPayrollRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	s, err := scanSalary(r.Pool.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE salary_id = $1;`, salaryID))
	if err != nil {
		return nil, notFoundOr(err, "salary "+salaryID)
	}
	return &s, nil
}

func (r *PgxPayrollRepository) ListSalaries(ctx context.Context, sf portsrepo.SalaryFilter) ([]domain.Salary, error) {
	f := &filter{}
	if sf.EmployeeID != nil {
		f.add("employee_id = %s", *sf.EmployeeID)
	}
	if sf.Period != nil {
		f.add("period = %s", *sf.Period)
	}
	if sf.Status != nil {
		f.add("status = %s", *sf.Status)
	}
	query := `SELECT ` + salaryColumns + ` FROM salaries` + f.where() + ` ORDER BY period DESC, employee_id` + f.page(sf.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query salaries", err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.Salary, error) { return scanSalary(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan salary row", err)
	}
	return list, nil
}

func (r *PgxPayrollRepository) MarkSalaryPaid(ctx context.Context, s domain.Salary) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE salaries SET status = 'PAID', paid_at = $2, payment_method = $3, last_updated_at = $4, last_updated_by = $5
		WHERE salary_id = $1 AND status = 'PENDING';`,
		s.SalaryID, s.PaidAt, s.PaymentMethod, s.LastUpdatedAt, s.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark salary "+s.SalaryID+" paid", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindSalaryByID(ctx, s.SalaryID); err != nil {
			return err
		}
		return fmt.Errorf("%w: salary %s is not pending", apperrors.ErrConflict, s.SalaryID)
	}
	return nil
}
