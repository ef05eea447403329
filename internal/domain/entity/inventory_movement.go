package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MovementTypeIN entrada de una recepción.
	MovementTypeIN = "IN"
	// MovementTypeLandedCost revalorización por costo en destino: cantidad 0, el valor va en TotalCost.
	MovementTypeLandedCost = "LANDED_COST"
)

// InventoryMovement línea del kardex. Los IN con la misma TransactionID forman una recepción;
// los LANDED_COST de un costo validado comparten la TransactionID del costo.
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string // vacío en movimientos del sistema
}
