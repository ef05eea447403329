package landedcost

import (
	"context"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/landedcost"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios que toca un costo en destino.
type TxRunner interface {
	RunLandedCost(ctx context.Context, fn func(
		costRepo repository.LandedCostRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Locker bloqueo exclusivo por clave entre instancias de la API.
// Si la clave ya está tomada devuelve un error que envuelve domain.ErrConflict.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// NoopLocker no bloquea; se usa cuando no hay Redis configurado (el SELECT FOR UPDATE sigue aplicando).
type NoopLocker struct{}

// Lock devuelve un release vacío.
func (NoopLocker) Lock(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// ReportGenerator genera el reporte PDF de un costo en destino.
type ReportGenerator interface {
	GenerateLandedCostPDF(ctx context.Context, cost *entity.LandedCost, check landedcost.CheckReport) ([]byte, error)
}
