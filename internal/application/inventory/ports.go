package inventory

import (
	"context"

	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

// TxRunner abre la transacción de una recepción. Los repos que recibe fn están
// atados a esa tx: si fn devuelve error no queda ni costo, ni stock, ni movimiento.
type TxRunner interface {
	RunReceipt(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
