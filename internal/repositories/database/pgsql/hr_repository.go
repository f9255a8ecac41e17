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

const employeeColumns = `employee_id, employee_code, name, position, department, email, phone, hire_date, base_salary,
	is_active, user_id, created_at, created_by, last_updated_at, last_updated_by`

const attendanceColumns = `attendance_id, employee_id, work_date, check_in, check_out, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

const leaveColumns = `leave_id, employee_id, leave_type, start_date, end_date, days, reason, status,
	reviewed_by, reviewed_at, review_note, created_at, created_by, last_updated_at, last_updated_by`

// PgxHRRepository stores employees, attendance and leave requests.
type PgxHRRepository struct {
	BaseRepository
}

func newPgxHRRepository(db *pgxpool.Pool) *PgxHRRepository {
	return &PgxHRRepository{BaseRepository: BaseRepository{Pool: db}}
}

var (
	_ portsrepo.EmployeeRepository   = (*PgxHRRepository)(nil)
	_ portsrepo.AttendanceRepository = (*PgxHRRepository)(nil)
	_ portsrepo.LeaveRepository      = (*PgxHRRepository)(nil)
)

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.EmployeeID,
		&e.EmployeeCode,
		&e.Name,
		&e.Position,
		&e.Department,
		&e.Email,
		&e.Phone,
		&e.HireDate,
		&e.BaseSalary,
		&e.IsActive,
		&e.UserID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

func scanAttendance(row pgx.Row) (domain.Attendance, error) {
	var a domain.Attendance
	err := row.Scan(
		&a.AttendanceID,
		&a.EmployeeID,
		&a.WorkDate,
		&a.CheckIn,
		&a.CheckOut,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

func scanLeave(row pgx.Row) (domain.LeaveRequest, error) {
	var l domain.LeaveRequest
	err := row.Scan(
		&l.LeaveID,
		&l.EmployeeID,
		&l.LeaveType,
		&l.StartDate,
		&l.EndDate,
		&l.Days,
		&l.Reason,
		&l.Status,
		&l.ReviewedBy,
		&l.ReviewedAt,
		&l.ReviewNote,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

func (r *PgxHRRepository) SaveEmployee(ctx context.Context, e domain.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		e.EmployeeID, e.EmployeeCode, e.Name, e.Position, e.Department, e.Email, e.Phone, e.HireDate, e.BaseSalary,
		e.IsActive, e.UserID, e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "employee "+e.EmployeeCode)
	}
	return nil
}

func (r *PgxHRRepository) UpdateEmployee(ctx context.Context, e domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, position = $3, department = $4, email = $5, phone = $6, base_salary = $7, user_id = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE employee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		e.EmployeeID, e.Name, e.Position, e.Department, e.Email, e.Phone, e.BaseSalary, e.UserID, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "employee "+e.EmployeeID)
	}
	return requireRow(tag, "employee "+e.EmployeeID)
}

func (r *PgxHRRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	e, err := scanEmployee(r.Pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1;`, employeeID))
	if err != nil {
		return nil, notFoundOr(err, "employee "+employeeID)
	}
	return &e, nil
}

func (r *PgxHRRepository) ListEmployees(ctx context.Context, ef portsrepo.EmployeeFilter) ([]domain.Employee, error) {
	f := &filter{}
	if ef.Department != "" {
		f.add("department = %s", ef.Department)
	}
	if ef.IsActive != nil {
		f.add("is_active = %s", *ef.IsActive)
	}
	query := `SELECT ` + employeeColumns + ` FROM employees` + f.where() + ` ORDER BY employee_code` + f.page(ef.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.Employee, error) { return scanEmployee(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
	}
	return list, nil
}

func (r *PgxHRRepository) SetEmployeeActive(ctx context.Context, employeeID string, active bool, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE employees SET is_active = $2, last_updated_at = $3, last_updated_by = $4 WHERE employee_id = $1;`,
		employeeID, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee "+employeeID, err)
	}
	return requireRow(tag, "employee "+employeeID)
}

// UpsertAttendance keeps the original ID and creation stamp when the day is recorded again.
func (r *PgxHRRepository) UpsertAttendance(ctx context.Context, a domain.Attendance) (*domain.Attendance, error) {
	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + attendanceColumns + `;
	`
	stored, err := scanAttendance(r.Pool.QueryRow(ctx, query,
		a.AttendanceID, a.EmployeeID, a.WorkDate, a.CheckIn, a.CheckOut, a.Status, a.Notes,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	))
	if err != nil {
		return nil, translateWriteError(err, "attendance of employee "+a.EmployeeID)
	}
	return &stored, nil
}

func (r *PgxHRRepository) ListAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attendance of employee "+employeeID, err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.Attendance, error) { return scanAttendance(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan attendance row", err)
	}
	return list, nil
}

func (r *PgxHRRepository) CountAttendanceByStatus(ctx context.Context, employeeID string, from, to time.Time) (map[domain.AttendanceStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM attendance
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		GROUP BY status;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count attendance of employee "+employeeID, err)
	}
	type statusCount struct {
		status domain.AttendanceStatus
		n      int
	}
	counts, err := collect(rows, func(rows pgx.Rows) (statusCount, error) {
		var c statusCount
		err := rows.Scan(&c.status, &c.n)
		return c, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan attendance count", err)
	}
	out := make(map[domain.AttendanceStatus]int, len(counts))
	for _, c := range counts {
		out[c.status] = c.n
	}
	return out, nil
}

func (r *PgxHRRepository) SaveLeave(ctx context.Context, l domain.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		l.LeaveID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.Days, l.Reason, l.Status,
		l.ReviewedBy, l.ReviewedAt, l.ReviewNote, l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "leave request "+l.LeaveID)
	}
	return nil
}

func (r *PgxHRRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error) {
	l, err := scanLeave(r.Pool.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE leave_id = $1;`, leaveID))
	if err != nil {
		return nil, notFoundOr(err, "leave request "+leaveID)
	}
	return &l, nil
}

func (r *PgxHRRepository) ListLeaves(ctx context.Context, lf portsrepo.LeaveFilter) ([]domain.LeaveRequest, error) {
	f := &filter{}
	if lf.EmployeeID != nil {
		f.add("employee_id = %s", *lf.EmployeeID)
	}
	if lf.Status != nil {
		f.add("status = %s", *lf.Status)
	}
	query := `SELECT ` + leaveColumns + ` FROM leave_requests` + f.where() + ` ORDER BY start_date DESC, created_at DESC` + f.page(lf.Page) + `;`
	return r.queryLeaves(ctx, query, f.args...)
}

func (r *PgxHRRepository) FindOverlappingLeaves(ctx context.Context, employeeID string, from, to time.Time, statuses []domain.LeaveStatus) ([]domain.LeaveRequest, error) {
	wanted := make([]string, len(statuses))
	for i, s := range statuses {
		wanted[i] = string(s)
	}
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND start_date <= $3 AND end_date >= $2 AND status = ANY($4)
		ORDER BY start_date;
	`
	return r.queryLeaves(ctx, query, employeeID, from, to, wanted)
}

func (r *PgxHRRepository) queryLeaves(ctx context.Context, query string, args ...any) ([]domain.LeaveRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query leave requests", err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.LeaveRequest, error) { return scanLeave(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan leave request row", err)
	}
	return list, nil
}

func (r *PgxHRRepository) UpdateLeaveStatus(ctx context.Context, l domain.LeaveRequest, from domain.LeaveStatus) error {
	query := `
		UPDATE leave_requests
		SET status = $3, reviewed_by = $4, reviewed_at = $5, review_note = $6, last_updated_at = $7, last_updated_by = $8
		WHERE leave_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, l.LeaveID, from, l.Status, l.ReviewedBy, l.ReviewedAt, l.ReviewNote, l.LastUpdatedAt, l.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update leave request "+l.LeaveID, err)
	}
	if tag.RowsAffected() == 0 {
		stored, err := r.FindLeaveByID(ctx, l.LeaveID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: leave request %s is %s, expected %s", apperrors.ErrConflict, l.LeaveID, stored.Status, from)
	}
	return nil
}
