package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo existencias por producto y bodega. Recibe pool o tx.
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Upsert guarda la cantidad de la pareja producto/bodega con su UpdatedAt.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	var at *time.Time
	if !stock.UpdatedAt.IsZero() {
		at = &stock.UpdatedAt
	}
	_, err := r.q.Exec(ctx, query, stock.ProductID, stock.WarehouseID, stock.Quantity, at)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Sin fila devuelve stock en cero para la pareja producto/bodega.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// TotalByProduct existencias del producto en todas las bodegas. Bloquea las filas: el costo
// promedio se calcula sobre este total dentro de la misma tx.
func (r *StockRepo) TotalByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `SELECT quantity FROM stock WHERE product_id = $1 FOR UPDATE`, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock %s: %w", productID, err)
	}
	quantities, err := pgx.CollectRows(rows, pgx.RowTo[decimal.Decimal])
	if err != nil {
		return decimal.Zero, fmt.Errorf("scan stock: %w", err)
	}
	return decimal.Sum(decimal.Zero, quantities...), nil
}
