package repository

import (
	"context"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error)

	// ListReceiptMoves devuelve los movimientos IN de las recepciones indicadas (TransactionID) cuyos
	// productos pertenecen a la empresa, con nombre, peso y volumen totales del producto.
	ListReceiptMoves(ctx context.Context, companyID string, transactionIDs []string) ([]*entity.ReceiptMove, error)
}
