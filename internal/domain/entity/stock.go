package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock existencias de un producto en una bodega. El costo vive en Product
// (promedio ponderado sobre todas las bodegas).
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// Receive suma una entrada a las existencias.
func (s *Stock) Receive(qty decimal.Decimal, at time.Time) {
	s.Quantity = s.Quantity.Add(qty)
	s.UpdatedAt = at
}
