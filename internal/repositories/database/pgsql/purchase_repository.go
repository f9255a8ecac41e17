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

const purchaseColumns = `purchase_id, purchase_number, supplier_id, status, order_date, total_amount, payment_method,
	completed_at, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseRepository struct {
	BaseRepository
	stock portsrepo.ScaffoldTransactionSupport
}

func newPgxPurchaseRepository(db *pgxpool.Pool, stock portsrepo.ScaffoldTransactionSupport) *PgxPurchaseRepository {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: db}, stock: stock}
}

var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

func scanPurchase(row pgx.Row) (domain.Purchase, error) {
	var p domain.Purchase
	err := row.Scan(
		&p.PurchaseID,
		&p.PurchaseNumber,
		&p.SupplierID,
		&p.Status,
		&p.OrderDate,
		&p.TotalAmount,
		&p.PaymentMethod,
		&p.CompletedAt,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxPurchaseRepository) loadItems(ctx context.Context, purchases []domain.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	ids := make([]string, len(purchases))
	index := make(map[string]int, len(purchases))
	for i, p := range purchases {
		ids[i] = p.PurchaseID
		index[p.PurchaseID] = i
		purchases[i].Items = []domain.PurchaseItem{}
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, purchase_id, scaffold_id, quantity, unit_cost, line_total
		FROM purchase_items WHERE purchase_id = ANY($1) ORDER BY purchase_id, line_no;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query purchase items", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (domain.PurchaseItem, error) {
		var it domain.PurchaseItem
		err := rows.Scan(&it.ItemID, &it.PurchaseID, &it.ScaffoldID, &it.Quantity, &it.UnitCost, &it.LineTotal)
		return it, err
	})
	if err != nil {
		return apperrors.NewAppError(500, "failed to scan purchase item row", err)
	}
	for _, it := range items {
		i := index[it.PurchaseID]
		purchases[i].Items = append(purchases[i].Items, it)
	}
	return nil
}

func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, p domain.Purchase) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
			p.PurchaseID, p.PurchaseNumber, p.SupplierID, p.Status, p.OrderDate, p.TotalAmount, p.PaymentMethod,
			p.CompletedAt, p.Notes, p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy)
		if err != nil {
			return translateWriteError(err, "purchase "+p.PurchaseNumber)
		}
		batch := &pgx.Batch{}
		for i, it := range p.Items {
			batch.Queue(`
				INSERT INTO purchase_items (item_id, purchase_id, scaffold_id, quantity, unit_cost, line_total, line_no)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
				it.ItemID, it.PurchaseID, it.ScaffoldID, it.Quantity, it.UnitCost, it.LineTotal, i+1)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return translateWriteError(err, "purchase items")
		}
		return nil
	})
}

// TransitionPurchase stores the new status when the stored one is still from, moving stock in the same transaction.
func (r *PgxPurchaseRepository) TransitionPurchase(ctx context.Context, p domain.Purchase, from domain.PurchaseStatus, stock []domain.StockChange) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE purchases SET status = $3, completed_at = $4, last_updated_at = $5, last_updated_by = $6
			WHERE purchase_id = $1 AND status = $2;`,
			p.PurchaseID, from, p.Status, p.CompletedAt, p.LastUpdatedAt, p.LastUpdatedBy)
		if err != nil {
			return translateWriteError(err, "purchase "+p.PurchaseID)
		}
		if tag.RowsAffected() == 0 {
			var status domain.PurchaseStatus
			if err := tx.QueryRow(ctx, `SELECT status FROM purchases WHERE purchase_id = $1;`, p.PurchaseID).Scan(&status); err != nil {
				return notFoundOr(err, "purchase "+p.PurchaseID)
			}
			return fmt.Errorf("%w: purchase %s is %s, expected %s", apperrors.ErrConflict, p.PurchaseNumber, status, from)
		}
		return r.stock.ApplyStockChangesInTx(ctx, tx, stock, p.LastUpdatedBy, p.LastUpdatedAt)
	})
}

func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	p, err := scanPurchase(r.Pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE purchase_id = $1;`, purchaseID))
	if err != nil {
		return nil, notFoundOr(err, "purchase "+purchaseID)
	}
	list := []domain.Purchase{p}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, pf portsrepo.PurchaseFilter) ([]domain.Purchase, error) {
	f := &filter{}
	if pf.Status != nil {
		f.add("status = %s", *pf.Status)
	}
	if pf.SupplierID != nil {
		f.add("supplier_id = %s", *pf.SupplierID)
	}
	query := `SELECT ` + purchaseColumns + ` FROM purchases` + f.where() + ` ORDER BY order_date DESC, created_at DESC` + f.page(pf.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchases", err)
	}
	purchases, err := collect(rows, func(rows pgx.Rows) (domain.Purchase, error) { return scanPurchase(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan purchase row", err)
	}
	if err := r.loadItems(ctx, purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}
