package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLandedCostRequest body para POST /api/landed-costs.
// PickingIDs son TransactionID de recepciones de la empresa.
type CreateLandedCostRequest struct {
	Name       string            `json:"name" validate:"required,max=200"`
	Date       *time.Time        `json:"date,omitempty"`
	PickingIDs []string          `json:"picking_ids" validate:"required,min=1,dive,required"`
	CostLines  []CostLineRequest `json:"cost_lines" validate:"dive"`
}

// CostLineRequest línea de costo base.
type CostLineRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	ProductID   string          `json:"product_id,omitempty"`
	PriceUnit   decimal.Decimal `json:"price_unit" validate:"nonzero_decimal"`
	SplitMethod string          `json:"split_method" validate:"required,oneof=equal by_quantity by_current_cost_price by_weight by_volume"`
	AccountID   string          `json:"account_id,omitempty"`
}

// AddIndividualLineRequest body para POST /api/landed-costs/:id/individual-lines.
// Con ProductID y sin Name/PriceUnit los valores se toman del producto.
type AddIndividualLineRequest struct {
	Name       string           `json:"name,omitempty" validate:"omitempty,max=200"`
	ProductID  string           `json:"product_id,omitempty"`
	PriceUnit  *decimal.Decimal `json:"price_unit,omitempty"`
	AccountID  string           `json:"account_id,omitempty"`
	ProductIDs []string         `json:"product_ids" validate:"required,min=1,dive,required"`
}

// LandedCostResponse costo en destino con totales y líneas.
type LandedCostResponse struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Date             time.Time                `json:"date"`
	State            string                   `json:"state"`
	CurrencyCode     string                   `json:"currency_code"`
	PickingIDs       []string                 `json:"picking_ids"`
	AmountTotal      decimal.Decimal          `json:"amount_total"`
	IndividualTotal  decimal.Decimal          `json:"individual_total"`
	TotalAdjustments decimal.Decimal          `json:"total_adjustments"`
	CostLines        []CostLineResponse       `json:"cost_lines"`
	IndividualLines  []IndividualLineResponse `json:"individual_lines"`
	ValuationLines   []ValuationLineResponse  `json:"valuation_lines"`
	ValidatedAt      *time.Time               `json:"validated_at,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// CostLineResponse línea de costo base.
type CostLineResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ProductID   string          `json:"product_id,omitempty"`
	PriceUnit   decimal.Decimal `json:"price_unit"`
	SplitMethod string          `json:"split_method"`
	AccountID   string          `json:"account_id,omitempty"`
}

// IndividualLineResponse gasto individual.
type IndividualLineResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	ProductID  string          `json:"product_id,omitempty"`
	PriceUnit  decimal.Decimal `json:"price_unit"`
	AccountID  string          `json:"account_id,omitempty"`
	ProductIDs []string        `json:"product_ids"`
}

// ValuationLineResponse línea de ajuste de valoración con costo final.
type ValuationLineResponse struct {
	ID                             string          `json:"id"`
	CostLineID                     string          `json:"cost_line_id,omitempty"`
	MoveID                         string          `json:"move_id"`
	ProductID                      string          `json:"product_id"`
	WarehouseID                    string          `json:"warehouse_id"`
	Name                           string          `json:"name"`
	Quantity                       decimal.Decimal `json:"quantity"`
	FormerCost                     decimal.Decimal `json:"former_cost"`
	AdditionalLandedCost           decimal.Decimal `json:"additional_landed_cost"`
	AdditionalIndividualLandedCost decimal.Decimal `json:"additional_individual_landed_cost"`
	IndividualCostLineID           string          `json:"individual_cost_line_id,omitempty"`
	FinalCost                      decimal.Decimal `json:"final_cost"`
	UnitFinalCost                  decimal.Decimal `json:"unit_final_cost"`
}

// LandedCostListResponse listado paginado (cabeceras con totales de líneas base).
type LandedCostListResponse struct {
	Items []LandedCostResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CheckResponse resultado de GET /api/landed-costs/:id/check.
type CheckResponse struct {
	LandedCostID string          `json:"landed_cost_id"`
	OK           bool            `json:"ok"`
	Reason       string          `json:"reason,omitempty"`
	CostLineID   string          `json:"cost_line_id,omitempty"`
	Expected     decimal.Decimal `json:"expected"`
	Actual       decimal.Decimal `json:"actual"`
}
