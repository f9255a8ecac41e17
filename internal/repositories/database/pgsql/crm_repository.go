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

const customerColumns = `customer_id, code, name, company_name, email, phone, address, tax_id, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const supplierColumns = `supplier_id, code, name, contact_person, email, phone, address, tax_id, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCRMRepository stores customers and suppliers.
type PgxCRMRepository struct {
	BaseRepository
}

func newPgxCRMRepository(db *pgxpool.Pool) *PgxCRMRepository {
	return &PgxCRMRepository{BaseRepository: BaseRepository{Pool: db}}
}

var (
	_ portsrepo.CustomerRepository = (*PgxCRMRepository)(nil)
	_ portsrepo.SupplierRepository = (*PgxCRMRepository)(nil)
)

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.CustomerID,
		&c.Code,
		&c.Name,
		&c.CompanyName,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.TaxID,
		&c.Notes,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func scanSupplier(row pgx.Row) (domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(
		&s.SupplierID,
		&s.Code,
		&s.Name,
		&s.ContactPerson,
		&s.Email,
		&s.Phone,
		&s.Address,
		&s.TaxID,
		&s.Notes,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// partyFilter builds the WHERE clause shared by customer and supplier lists.
func partyFilter(pf portsrepo.PartyFilter) *filter {
	f := &filter{}
	if pf.IsActive != nil {
		f.add("is_active = %s", *pf.IsActive)
	}
	if pf.Search != "" {
		pattern := "%" + pf.Search + "%"
		f.add("(code ILIKE %s OR name ILIKE %s)", pattern, pattern)
	}
	return f
}

func (r *PgxCRMRepository) SaveCustomer(ctx context.Context, c domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		c.CustomerID, c.Code, c.Name, c.CompanyName, c.Email, c.Phone, c.Address, c.TaxID, c.Notes, c.IsActive,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "customer "+c.Code)
	}
	return nil
}

func (r *PgxCRMRepository) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, company_name = $3, email = $4, phone = $5, address = $6, tax_id = $7, notes = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE customer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		c.CustomerID, c.Name, c.CompanyName, c.Email, c.Phone, c.Address, c.TaxID, c.Notes, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "customer "+c.CustomerID)
	}
	return requireRow(tag, "customer "+c.CustomerID)
}

func (r *PgxCRMRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	c, err := scanCustomer(r.Pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1;`, customerID))
	if err != nil {
		return nil, notFoundOr(err, "customer "+customerID)
	}
	return &c, nil
}

func (r *PgxCRMRepository) ListCustomers(ctx context.Context, pf portsrepo.PartyFilter) ([]domain.Customer, error) {
	f := partyFilter(pf)
	query := `SELECT ` + customerColumns + ` FROM customers` + f.where() + ` ORDER BY code` + f.page(pf.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	customers, err := collect(rows, func(rows pgx.Rows) (domain.Customer, error) { return scanCustomer(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
	}
	return customers, nil
}

func (r *PgxCRMRepository) SetCustomerActive(ctx context.Context, customerID string, active bool, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE customers SET is_active = $2, last_updated_at = $3, last_updated_by = $4 WHERE customer_id = $1;`,
		customerID, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+customerID, err)
	}
	return requireRow(tag, "customer "+customerID)
}

func (r *PgxCRMRepository) SaveSupplier(ctx context.Context, s domain.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		s.SupplierID, s.Code, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.TaxID, s.Notes, s.IsActive,
		s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "supplier "+s.Code)
	}
	return nil
}

func (r *PgxCRMRepository) UpdateSupplier(ctx context.Context, s domain.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6, tax_id = $7, notes = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE supplier_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		s.SupplierID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.TaxID, s.Notes, s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "supplier "+s.SupplierID)
	}
	return requireRow(tag, "supplier "+s.SupplierID)
}

func (r *PgxCRMRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	s, err := scanSupplier(r.Pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE supplier_id = $1;`, supplierID))
	if err != nil {
		return nil, notFoundOr(err, "supplier "+supplierID)
	}
	return &s, nil
}

func (r *PgxCRMRepository) ListSuppliers(ctx context.Context, pf portsrepo.PartyFilter) ([]domain.Supplier, error) {
	f := partyFilter(pf)
	query := `SELECT ` + supplierColumns + ` FROM suppliers` + f.where() + ` ORDER BY code` + f.page(pf.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers", err)
	}
	suppliers, err := collect(rows, func(rows pgx.Rows) (domain.Supplier, error) { return scanSupplier(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
	}
	return suppliers, nil
}

func (r *PgxCRMRepository) SetSupplierActive(ctx context.Context, supplierID string, active bool, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE suppliers SET is_active = $2, last_updated_at = $3, last_updated_by = $4 WHERE supplier_id = $1;`,
		supplierID, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update supplier "+supplierID, err)
	}
	return requireRow(tag, "supplier "+supplierID)
}
