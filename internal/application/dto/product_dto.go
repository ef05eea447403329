package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto o servicio (flete, arancel...).
// Weight y Volume son por unidad; alimentan los repartos by_weight y by_volume.
// Cost es el valor por defecto de un gasto individual creado desde un producto de servicio.
type CreateProductRequest struct {
	SKU                 string          `json:"sku" validate:"required,min=1,max=100"`
	Name                string          `json:"name" validate:"required,min=1,max=200"`
	Cost                decimal.Decimal `json:"cost" validate:"nonnegative_decimal"`
	Weight              decimal.Decimal `json:"weight" validate:"nonnegative_decimal"`
	Volume              decimal.Decimal `json:"volume" validate:"nonnegative_decimal"`
	StockInputAccountID string          `json:"stock_input_account_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Weight              *decimal.Decimal `json:"weight"`
	Volume              *decimal.Decimal `json:"volume"`
	StockInputAccountID *string          `json:"stock_input_account_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Cost                decimal.Decimal `json:"cost"`
	Weight              decimal.Decimal `json:"weight"`
	Volume              decimal.Decimal `json:"volume"`
	StockInputAccountID string          `json:"stock_input_account_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
