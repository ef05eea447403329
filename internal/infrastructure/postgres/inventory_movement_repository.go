package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, transaction_id, product_id, warehouse_id, type, quantity, unit_cost, total_cost,
	date, created_at, COALESCE(created_by, '')`

// InventoryMovementRepo kardex sobre PostgreSQL. Recibe pool o tx.
type InventoryMovementRepo struct {
	q Querier
}

func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta el movimiento; asigna ID si viene vacío.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, transaction_id, product_id, warehouse_id, type, quantity, unit_cost, total_cost, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))`,
		m.ID, m.TransactionID, m.ProductID, m.WarehouseID, m.Type,
		m.Quantity, m.UnitCost, m.TotalCost, m.Date, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return writeError("create inventory movement", err)
	}
	return nil
}

// ListByTransaction movimientos de una recepción o de un costo validado, en orden de creación.
func (r *InventoryMovementRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements WHERE transaction_id = $1 ORDER BY created_at, id`,
		transactionID)
	if err != nil {
		return nil, fmt.Errorf("list movements %s: %w", transactionID, err)
	}
	moves, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[entity.InventoryMovement])
	if err != nil {
		return nil, fmt.Errorf("scan movements: %w", err)
	}
	return moves, nil
}

// ListReceiptMoves movimientos IN de las recepciones con nombre del producto y peso/volumen
// totales (por unidad × cantidad). El reparto depende del orden: recepción en el orden pedido,
// luego creación e id.
func (r *InventoryMovementRepo) ListReceiptMoves(ctx context.Context, companyID string, transactionIDs []string) ([]*entity.ReceiptMove, error) {
	if len(transactionIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.product_id, p.name, m.warehouse_id, m.quantity, m.total_cost,
		       m.quantity * p.weight, m.quantity * p.volume
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.transaction_id = ANY($1::text[]) AND m.type = $2 AND p.company_id = $3
		ORDER BY array_position($1::text[], m.transaction_id), m.created_at, m.id`,
		transactionIDs, entity.MovementTypeIN, companyID)
	if err != nil {
		return nil, fmt.Errorf("list receipt moves: %w", err)
	}
	moves, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[entity.ReceiptMove])
	if err != nil {
		return nil, fmt.Errorf("scan receipt moves: %w", err)
	}
	return moves, nil
}
