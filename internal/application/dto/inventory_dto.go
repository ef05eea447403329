package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterReceiptRequest body para POST /api/inventory/receipts.
// Todas las líneas entran a la misma bodega y comparten TransactionID (la recepción).
type RegisterReceiptRequest struct {
	WarehouseID string               `json:"warehouse_id" validate:"required"`
	Lines       []ReceiptLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReceiptLineRequest una entrada (IN) de la recepción.
type ReceiptLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"positive_decimal"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"nonnegative_decimal"`
}

// ReceiptResponse recepción registrada; TransactionID es el picking que referencia un costo en destino.
type ReceiptResponse struct {
	TransactionID string                `json:"transaction_id"`
	WarehouseID   string                `json:"warehouse_id"`
	ReceivedAt    time.Time             `json:"received_at"`
	Moves         []ReceiptMoveResponse `json:"moves"`
}

// ReceiptMoveResponse movimiento IN de la recepción.
type ReceiptMoveResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
