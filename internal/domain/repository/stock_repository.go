package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Upsert(ctx context.Context, stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// TotalByProduct cantidad en stock del producto sumando todas las bodegas.
	TotalByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
}
