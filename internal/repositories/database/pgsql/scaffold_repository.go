package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
)

const scaffoldColumns = `scaffold_id, code, name, category, unit, total_quantity, available_quantity, condition,
	daily_rental_price, sale_price, unit_cost, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxScaffoldRepository struct {
	BaseRepository
}

func newPgxScaffoldRepository(db *pgxpool.Pool) *PgxScaffoldRepository {
	return &PgxScaffoldRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ScaffoldRepositoryFacade = (*PgxScaffoldRepository)(nil)

func scanScaffold(row pgx.Row) (domain.Scaffold, error) {
	var s domain.Scaffold
	err := row.Scan(
		&s.ScaffoldID,
		&s.Code,
		&s.Name,
		&s.Category,
		&s.Unit,
		&s.TotalQuantity,
		&s.AvailableQuantity,
		&s.Condition,
		&s.DailyRentalPrice,
		&s.SalePrice,
		&s.UnitCost,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxScaffoldRepository) SaveScaffold(ctx context.Context, s domain.Scaffold) error {
	query := `
		INSERT INTO scaffolds (` + scaffoldColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		s.ScaffoldID, s.Code, s.Name, s.Category, s.Unit, s.TotalQuantity, s.AvailableQuantity, s.Condition,
		s.DailyRentalPrice, s.SalePrice, s.UnitCost, s.IsActive, s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "scaffold "+s.Code)
	}
	return nil
}

// UpdateScaffold changes descriptive fields and prices. Quantities only move through stock changes.
func (r *PgxScaffoldRepository) UpdateScaffold(ctx context.Context, s domain.Scaffold) error {
	query := `
		UPDATE scaffolds
		SET name = $2, category = $3, unit = $4, condition = $5, daily_rental_price = $6, sale_price = $7, unit_cost = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE scaffold_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		s.ScaffoldID, s.Name, s.Category, s.Unit, s.Condition, s.DailyRentalPrice, s.SalePrice, s.UnitCost,
		s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "scaffold "+s.ScaffoldID)
	}
	return requireRow(tag, "scaffold "+s.ScaffoldID)
}

func (r *PgxScaffoldRepository) SetScaffoldActive(ctx context.Context, scaffoldID string, active bool, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE scaffolds SET is_active = $2, last_updated_at = $3, last_updated_by = $4 WHERE scaffold_id = $1;`,
		scaffoldID, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update scaffold "+scaffoldID, err)
	}
	return requireRow(tag, "scaffold "+scaffoldID)
}

func (r *PgxScaffoldRepository) FindScaffoldByID(ctx context.Context, scaffoldID string) (*domain.Scaffold, error) {
	s, err := scanScaffold(r.Pool.QueryRow(ctx, `SELECT `+scaffoldColumns+` FROM scaffolds WHERE scaffold_id = $1;`, scaffoldID))
	if err != nil {
		return nil, notFoundOr(err, "scaffold "+scaffoldID)
	}
	return &s, nil
}

// FindScaffoldsByIDs returns the scaffolds found, keyed by ID. Missing IDs are simply absent.
func (r *PgxScaffoldRepository) FindScaffoldsByIDs(ctx context.Context, scaffoldIDs []string) (map[string]domain.Scaffold, error) {
	if len(scaffoldIDs) == 0 {
		return map[string]domain.Scaffold{}, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+scaffoldColumns+` FROM scaffolds WHERE scaffold_id = ANY($1);`, uniqueStrings(scaffoldIDs))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query scaffolds", err)
	}
	return scaffoldMap(rows)
}

func scaffoldMap(rows pgx.Rows) (map[string]domain.Scaffold, error) {
	list, err := collect(rows, func(rows pgx.Rows) (domain.Scaffold, error) { return scanScaffold(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan scaffold row", err)
	}
	out := make(map[string]domain.Scaffold, len(list))
	for _, s := range list {
		out[s.ScaffoldID] = s
	}
	return out, nil
}

func (r *PgxScaffoldRepository) ListScaffolds(ctx context.Context, sf portsrepo.ScaffoldFilter) ([]domain.Scaffold, error) {
	f := &filter{}
	if sf.Category != "" {
		f.add("category = %s", sf.Category)
	}
	if sf.IsActive != nil {
		f.add("is_active = %s", *sf.IsActive)
	}
	query := `SELECT ` + scaffoldColumns + ` FROM scaffolds` + f.where() + ` ORDER BY code` + f.page(sf.Page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query scaffolds", err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.Scaffold, error) { return scanScaffold(rows) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan scaffold row", err)
	}
	return list, nil
}

func (r *PgxScaffoldRepository) ListStockMovements(ctx context.Context, scaffoldID string, page portsrepo.Page) ([]domain.StockMovement, error) {
	f := &filter{}
	f.add("scaffold_id = %s", scaffoldID)
	query := `
		SELECT movement_id, scaffold_id, quantity, reason, reference_id, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements` + f.where() + `
		ORDER BY created_at DESC, movement_id DESC` + f.page(page) + `;`
	rows, err := r.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock movements of scaffold "+scaffoldID, err)
	}
	list, err := collect(rows, func(rows pgx.Rows) (domain.StockMovement, error) {
		var m domain.StockMovement
		err := rows.Scan(&m.MovementID, &m.ScaffoldID, &m.Quantity, &m.Reason, &m.ReferenceID, &m.Notes,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan stock movement row", err)
	}
	return list, nil
}

func (r *PgxScaffoldRepository) ApplyStockChanges(ctx context.Context, changes []domain.StockChange, userID string, now time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return r.ApplyStockChangesInTx(ctx, tx, changes, userID, now)
	})
}

// ApplyStockChangesInTx locks every scaffold touched (in ID order), applies the changes in the
// order given and writes one movement per change.
func (r *PgxScaffoldRepository) ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.StockChange, userID string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}
	ids := make([]string, len(changes))
	for i, c := range changes {
		ids[i] = c.ScaffoldID
	}
	ids = uniqueStrings(ids)

	rows, err := tx.Query(ctx, `SELECT `+scaffoldColumns+` FROM scaffolds WHERE scaffold_id = ANY($1) ORDER BY scaffold_id FOR UPDATE;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock scaffolds", err)
	}
	locked, err := scaffoldMap(rows)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, c := range changes {
		s, ok := locked[c.ScaffoldID]
		if !ok {
			return fmt.Errorf("%w: scaffold %s", apperrors.ErrNotFound, c.ScaffoldID)
		}
		s.TotalQuantity += c.TotalDelta
		s.AvailableQuantity += c.AvailableDelta
		if s.AvailableQuantity < 0 || s.AvailableQuantity > s.TotalQuantity {
			return fmt.Errorf("%w: insufficient stock for scaffold %s (available %d of %d after change)",
				apperrors.ErrConflict, s.Code, s.AvailableQuantity, s.TotalQuantity)
		}
		if c.UnitCost != nil {
			s.UnitCost = *c.UnitCost
		}
		locked[c.ScaffoldID] = s

		batch.Queue(`
			INSERT INTO stock_movements (movement_id, scaffold_id, quantity, reason, reference_id, notes,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7, $8);`,
			uuid.NewString(), c.ScaffoldID, c.MovementQuantity(), c.Reason, nullIfEmpty(c.ReferenceID), c.Notes, now, userID)
	}
	for _, id := range ids {
		s := locked[id]
		batch.Queue(`
			UPDATE scaffolds
			SET total_quantity = $2, available_quantity = $3, unit_cost = $4, last_updated_at = $5, last_updated_by = $6
			WHERE scaffold_id = $1;`,
			id, s.TotalQuantity, s.AvailableQuantity, s.UnitCost, now, userID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateWriteError(err, "stock changes")
	}
	return nil
}
