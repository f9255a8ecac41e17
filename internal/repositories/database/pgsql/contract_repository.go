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

const contractColumns = `contract_id, contract_number, customer_id, contract_type, status, start_date, end_date,
	subtotal, discount, total_amount, paid_amount, payment_status, signed_at, signed_by, invoice_number, invoiced_at,
	completed_at, notes, created_at, created_by, last_updated_at, last_updated_by`

const contractItemColumns = `item_id, contract_id, scaffold_id, quantity, unit_price, days, line_total`

const paymentColumns = `payment_id, contract_id, amount, payment_date, method, reference, notes,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxContractRepository stores contracts, their items and customer payments.
type PgxContractRepository struct {
	BaseRepository
	stock portsrepo.ScaffoldTransactionSupport
}

func newPgxContractRepository(db *pgxpool.Pool, stock portsrepo.ScaffoldTransactionSupport) *PgxContractRepository {
	return &PgxContractRepository{BaseRepository: BaseRepository{Pool: db}, stock: stock}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

func scanContract(row pgx.Row) (domain.Contract, error) {
	var c domain.Contract
	err := row.Scan(
		&c.ContractID,
		&c.ContractNumber,
		&c.CustomerID,
		&c.ContractType,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.Subtotal,
		&c.Discount,
		&c.TotalAmount,
		&c.PaidAmount,
		&c.PaymentStatus,
		&c.SignedAt,
		&c.SignedBy,
		&c.InvoiceNumber,
		&c.InvoicedAt,
		&c.CompletedAt,
		&c.Notes,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.ContractID,
		&p.Amount,
		&p.PaymentDate,
		&p.Method,
		&p.Reference,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func insertContractItems(ctx context.Context, tx pgx.Tx, items []domain.ContractItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(`INSERT INTO contract_items (`+contractItemColumns+`, line_no) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			it.ItemID, it.ContractID, it.ScaffoldID, it.Quantity, it.UnitPrice, it.Days, it.LineTotal, i+1)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateWriteError(err, "contract items")
	}
	return nil
}

// loadContractItems fills Items of every contract in place.
func loadContractItems(ctx context.Context, q querier, contracts []domain.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	ids := make([]string, len(contracts))
	index := make(map[string]int, len(contracts))
	for i, c := range contracts {
		ids[i] = c.ContractID
		index[c.ContractID] = i
		contracts[i].Items = []domain.ContractItem{}
	}
	rows, err := q.Query(ctx, `SELECT `+contractItemColumns+` FROM contract_items WHERE contract_id = ANY($1) ORDER BY contract_id, line_no;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query contract items", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (domain.ContractItem, error) {
		var it domain.ContractItem
		err := rows.Scan(&it.ItemID, &it.ContractID, &it.ScaffoldID, &it.Quantity, &it.UnitPrice, &it.Days, &it.LineTotal)
		return it, err
	})
	if err != nil {
		return apperrors.NewAppError(500, "failed to scan contract item row", err)
	}
	for _, it := range items {
		i := index[it.ContractID]
		contracts[i].Items = append(contracts[i].Items, it)
	}
	return nil
}

func (r *PgxContractRepository) SaveContract(ctx context.Context, c domain.Contract) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO contracts (` + contractColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
		`
		_, err := tx.Exec(ctx, query,
			c.ContractID, c.ContractNumber, c.CustomerID, c.ContractType, c.Status, c.StartDate, c.EndDate,
			c.Subtotal, c.Discount, c.TotalAmount, c.PaidAmount, c.PaymentStatus, c.SignedAt, c.SignedBy,
			c.InvoiceNumber, c.InvoicedAt, c.CompletedAt, c.Notes, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
		)
		if err != nil {
			return translateWriteError(err, "contract "+c.ContractNumber)
		}
		return insertContractItems(ctx, tx, c.Items)
	})
}

func (r *PgxContractRepository) UpdateDraftContract(ctx context.Context, c domain.Contract) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE contracts
			SET start_date = $2, end_date = $3, subtotal = $4, discount = $5, total_amount = $6, notes = $7,
				last_updated_at = $8, last_updated_by = $9
			WHERE contract_id = $1 AND status = 'DRAFT';
		`
		tag, err := tx.Exec(ctx, query,
			c.ContractID, c.StartDate, c.EndDate, c.Subtotal, c.Discount, c.TotalAmount, c.Notes, c.LastUpdatedAt, c.LastUpdatedBy,
		)
		if err != nil {
			return translateWriteError(err, "contract "+c.ContractID)
		}
		if tag.RowsAffected() == 0 {
			return r.statusConflict(ctx, tx, c.ContractID, domain.ContractDraft)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM contract_items WHERE contract_id = $1;`, c.ContractID); err != nil {
			return apperrors.NewAppError(500, "failed to clear items of contract "+c.ContractID, err)
		}
		return insertContractItems(ctx, tx, c.Items)
	})
}

// statusConflict explains a zero-row conditional update: the contract is missing or has moved on.
func (r *PgxContractRepository) statusConflict(ctx context.Context, q querier, contractID string, want domain.ContractStatus) error {
	var status domain.ContractStatus
	if err := q.QueryRow(ctx, `SELECT status FROM contracts WHERE contract_id = $1;`, contractID).Scan(&status); err != nil {
		return notFoundOr(err, "contract "+contractID)
	}
	return fmt.Errorf("%w: contract %s is %s, expected %s", apperrors.ErrConflict, contractID, status, want)
}

func (r *PgxContractRepository) TransitionContract(ctx context.Context, c domain.Contract, from domain.ContractStatus, stock []domain.StockChange) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE contracts
			SET status = $3, signed_at = $4, signed_by = $5, invoice_number = $6, invoiced_at = $7, completed_at = $8,
				last_updated_at = $9, last_updated_by = $10
			WHERE contract_id = $1 AND status = $2;
		`
		tag, err := tx.Exec(ctx, query,
			c.ContractID, from, c.Status, c.SignedAt, c.SignedBy, c.InvoiceNumber, c.InvoicedAt, c.CompletedAt,
			c.LastUpdatedAt, c.LastUpdatedBy,
		)
		if err != nil {
			return translateWriteError(err, "contract "+c.ContractID)
		}
		if tag.RowsAffected() == 0 {
			return r.statusConflict(ctx, tx, c.ContractID, from)
		}
		return r.stock.ApplyStockChangesInTx(ctx, tx, stock, c.LastUpdatedBy, c.LastUpdatedAt)
	})
}

func (r *PgxContractRepository) AddPayment(ctx context.Context, p domain.Payment) (*domain.Contract, error) {
	var updated domain.Contract
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		c, err := scanContract(tx.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE contract_id = $1 FOR UPDATE;`, p.ContractID))
		if err != nil {
			return notFoundOr(err, "contract "+p.ContractID)
		}
		if c.Status != domain.ContractInvoiced && c.Status != domain.ContractCompleted {
			return fmt.Errorf("%w: contract %s is %s", apperrors.ErrConflict, c.ContractNumber, c.Status)
		}
		if p.Amount.GreaterThan(c.Outstanding()) {
			return fmt.Errorf("%w: payment %s exceeds outstanding balance %s", apperrors.ErrValidation, p.Amount, c.Outstanding())
		}

		_, err = tx.Exec(ctx, `INSERT INTO payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			p.PaymentID, p.ContractID, p.Amount, p.PaymentDate, p.Method, p.Reference, p.Notes,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy)
		if err != nil {
			return translateWriteError(err, "payment "+p.PaymentID)
		}

		c.PaidAmount = c.PaidAmount.Add(p.Amount)
		c.PaymentStatus = domain.PaymentStatusFor(c.TotalAmount, c.PaidAmount)
		c.Touch(p.CreatedBy, p.CreatedAt)
		_, err = tx.Exec(ctx, `
			UPDATE contracts SET paid_amount = $2, payment_status = $3, last_updated_at = $4, last_updated_by = $5
			WHERE contract_id = $1;`,
			c.ContractID, c.PaidAmount, c.PaymentStatus, c.LastUpdatedAt, c.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update paid amount of contract "+c.ContractID, err)
		}

		list := []domain.Contract{c}
		if err := loadContractItems(ctx, tx, list); err != nil {
			return err
		}
		updated = list[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	c, err := scanContract(r.Pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE contract_id = $1;`, contractID))
	if err != nil {
		return nil, notFoundOr(err, "contract "+contractID)
	}
	list := []domain.Contract{c}
	if err := loadContractItems(ctx, r.Pool, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// ListContracts returns contracts newest first, items included.
func (r *PgxContractRepository) ListContracts(ctx context.Context, cf portsrepo.ContractFilter) ([]domain.Contract, error) {
	f := &filter{}
	if cf.Status != nil {
		f.add("status = %s", *cf.Status)
	}
	if cf.CustomerID != nil {
		f.add("customer_id = %s", *cf.CustomerID)
	}
	query := `SELECT ` + contractColumns + ` FROM contracts` + f.where() + ` ORDER BY created_at DESC, contract_id` + f.page(cf.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contracts", err)
	}
	contracts, err := collect(rows, func(rows pgx.Rows) (domain.Contract, error) { return scanContract(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan contract row", err)
	}
	if err := loadContractItems(ctx, r.Pool, contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *PgxContractRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	p, err := scanPayment(r.Pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1;`, paymentID))
	if err != nil {
		return nil, notFoundOr(err, "payment "+paymentID)
	}
	return &p, nil
}

func (r *PgxContractRepository) ListPayments(ctx context.Context, contractID string) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE contract_id = $1 ORDER BY payment_date, created_at;`, contractID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments of contract "+contractID, err)
	}
	payments, err := collect(rows, func(rows pgx.Rows) (domain.Payment, error) { return scanPayment(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
	}
	return payments, nil
}
