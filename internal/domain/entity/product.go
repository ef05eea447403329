package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es promedio ponderado calculado desde movimientos y ajustado por costos en destino.
// Weight y Volume son por unidad y alimentan los repartos by_weight / by_volume.
type Product struct {
	ID                  string
	CompanyID           string
	SKU                 string // código único por empresa
	Name                string
	Cost                decimal.Decimal // costo promedio ponderado (inicia en 0)
	Weight              decimal.Decimal
	Volume              decimal.Decimal
	StockInputAccountID string // cuenta contable de entrada de inventario
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
