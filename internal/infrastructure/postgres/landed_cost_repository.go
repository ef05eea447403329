package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

var _ repository.LandedCostRepository = (*LandedCostRepo)(nil)

// LandedCostRepo implementación de LandedCostRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas se guardan con su posición para que el reparto se repita en el mismo orden.
type LandedCostRepo struct {
	q Querier
}

// NewLandedCostRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLandedCostRepository(q Querier) *LandedCostRepo {
	return &LandedCostRepo{q: q}
}

const landedCostColumns = `id, company_id, name, date, state, currency_code, currency_rounding, picking_ids, validated_at, created_at, updated_at`

// Create persiste la cabecera y las líneas de costo base en un solo lote.
func (r *LandedCostRepo) Create(ctx context.Context, cost *entity.LandedCost) error {
	if cost.ID == "" {
		cost.ID = uuid.New().String()
	}
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO landed_costs (`+landedCostColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		cost.ID, cost.CompanyID, cost.Name, cost.Date, cost.State,
		cost.Currency.Code, cost.Currency.Rounding, cost.PickingIDs, cost.ValidatedAt,
		cost.CreatedAt, cost.UpdatedAt,
	)
	for i, l := range cost.CostLines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.CostID = cost.ID
		batch.Queue(`
			INSERT INTO landed_cost_lines (id, cost_id, position, name, product_id, price_unit, split_method, account_id)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
			l.ID, l.CostID, i, l.Name, l.ProductID, l.PriceUnit, l.SplitMethod, l.AccountID,
		)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return writeError("insert landed cost", err)
	}
	return nil
}

// GetByID obtiene el costo con todas sus líneas. nil si no existe.
func (r *LandedCostRepo) GetByID(ctx context.Context, id string) (*entity.LandedCost, error) {
	return r.get(ctx, `SELECT `+landedCostColumns+` FROM landed_costs WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
func (r *LandedCostRepo) GetForUpdate(ctx context.Context, id string) (*entity.LandedCost, error) {
	return r.get(ctx, `SELECT `+landedCostColumns+` FROM landed_costs WHERE id = $1 FOR UPDATE`, id)
}

func (r *LandedCostRepo) get(ctx context.Context, query, id string) (*entity.LandedCost, error) {
	cost, err := scanLandedCost(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get landed cost: %w", err)
	}
	if cost.CostLines, err = r.costLines(ctx, id); err != nil {
		return nil, err
	}
	if cost.IndividualCostLines, err = r.individualLines(ctx, id); err != nil {
		return nil, err
	}
	if cost.ValuationAdjustmentLines, err = r.valuationLines(ctx, id); err != nil {
		return nil, err
	}
	return cost, nil
}

// ListByCompany lista cabeceras (sin líneas) por empresa con paginación.
func (r *LandedCostRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.LandedCost, error) {
	query := `SELECT ` + landedCostColumns + `
		FROM landed_costs WHERE company_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list landed costs: %w", err)
	}
	defer rows.Close()
	var list []*entity.LandedCost
	for rows.Next() {
		cost, err := scanLandedCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan landed cost: %w", err)
		}
		list = append(list, cost)
	}
	return list, rows.Err()
}

// AddIndividualLine agrega un gasto individual al final del costo.
func (r *LandedCostRepo) AddIndividualLine(ctx context.Context, line *entity.IndividualCostLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO landed_cost_individual_lines (id, cost_id, position, name, product_id, price_unit, account_id, product_ids)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM landed_cost_individual_lines WHERE cost_id = $2),
			$3, NULLIF($4, ''), $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.CostID, line.Name, line.ProductID, line.PriceUnit, line.AccountID, line.ProductIDs,
	)
	if err != nil {
		return writeError("insert individual cost line", err)
	}
	return nil
}

// DeleteIndividualLine elimina un gasto individual del costo. ErrNotFound si no existe.
func (r *LandedCostRepo) DeleteIndividualLine(ctx context.Context, costID, lineID string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM landed_cost_individual_lines WHERE id = $1 AND cost_id = $2`, lineID, costID)
	if err != nil {
		return fmt.Errorf("delete individual cost line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceValuationLines borra las líneas de valoración anteriores y guarda las nuevas en un lote.
// Llamar dentro de la misma tx que GetForUpdate.
func (r *LandedCostRepo) ReplaceValuationLines(ctx context.Context, costID string, lines []*entity.ValuationAdjustmentLine) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM landed_cost_valuation_lines WHERE cost_id = $1`, costID)
	for i, v := range lines {
		if v.ID == "" {
			v.ID = uuid.New().String()
		}
		v.CostID = costID
		batch.Queue(`
			INSERT INTO landed_cost_valuation_lines (
				id, cost_id, position, cost_line_id, move_id, product_id, warehouse_id, name,
				quantity, weight, volume, former_cost,
				additional_landed_cost, additional_individual_landed_cost, individual_cost_line_id)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''))`,
			v.ID, v.CostID, i, v.CostLineID, v.MoveID, v.ProductID, v.WarehouseID, v.Name,
			v.Quantity, v.Weight, v.Volume, v.FormerCost,
			v.AdditionalLandedCost, v.AdditionalIndividualLandedCost, v.IndividualCostLineID,
		)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("replace valuation lines: %w", err)
	}
	return nil
}

// UpdateState persiste el estado del costo.
func (r *LandedCostRepo) UpdateState(ctx context.Context, cost *entity.LandedCost) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE landed_costs SET state = $2, validated_at = $3, updated_at = $4 WHERE id = $1`,
		cost.ID, cost.State, cost.ValidatedAt, cost.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update landed cost state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el costo; las líneas se borran en cascada.
func (r *LandedCostRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM landed_costs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete landed cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLandedCost(row pgx.Row) (*entity.LandedCost, error) {
	var c entity.LandedCost
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Date, &c.State,
		&c.Currency.Code, &c.Currency.Rounding, &c.PickingIDs, &c.ValidatedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *LandedCostRepo) costLines(ctx context.Context, costID string) ([]*entity.LandedCostLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cost_id, name, COALESCE(product_id, ''), price_unit, split_method, COALESCE(account_id, '')
		FROM landed_cost_lines WHERE cost_id = $1 ORDER BY position`, costID)
	if err != nil {
		return nil, fmt.Errorf("list cost lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.LandedCostLine
	for rows.Next() {
		var l entity.LandedCostLine
		if err := rows.Scan(&l.ID, &l.CostID, &l.Name, &l.ProductID, &l.PriceUnit, &l.SplitMethod, &l.AccountID); err != nil {
			return nil, fmt.Errorf("scan cost line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LandedCostRepo) individualLines(ctx context.Context, costID string) ([]*entity.IndividualCostLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cost_id, name, COALESCE(product_id, ''), price_unit, COALESCE(account_id, ''), product_ids
		FROM landed_cost_individual_lines WHERE cost_id = $1 ORDER BY position`, costID)
	if err != nil {
		return nil, fmt.Errorf("list individual cost lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.IndividualCostLine
	for rows.Next() {
		var l entity.IndividualCostLine
		if err := rows.Scan(&l.ID, &l.CostID, &l.Name, &l.ProductID, &l.PriceUnit, &l.AccountID, &l.ProductIDs); err != nil {
			return nil, fmt.Errorf("scan individual cost line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LandedCostRepo) valuationLines(ctx context.Context, costID string) ([]*entity.ValuationAdjustmentLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cost_id, COALESCE(cost_line_id, ''), move_id, product_id, warehouse_id, name,
		       quantity, weight, volume, former_cost,
		       additional_landed_cost, additional_individual_landed_cost, COALESCE(individual_cost_line_id, '')
		FROM landed_cost_valuation_lines WHERE cost_id = $1 ORDER BY position`, costID)
	if err != nil {
		return nil, fmt.Errorf("list valuation lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ValuationAdjustmentLine
	for rows.Next() {
		var v entity.ValuationAdjustmentLine
		if err := rows.Scan(&v.ID, &v.CostID, &v.CostLineID, &v.MoveID, &v.ProductID, &v.WarehouseID, &v.Name,
			&v.Quantity, &v.Weight, &v.Volume, &v.FormerCost,
			&v.AdditionalLandedCost, &v.AdditionalIndividualLandedCost, &v.IndividualCostLineID); err != nil {
			return nil, fmt.Errorf("scan valuation line: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
