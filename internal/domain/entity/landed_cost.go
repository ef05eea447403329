package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del costo en destino.
const (
	LandedCostStateDraft  = "draft"
	LandedCostStateDone   = "done"
	LandedCostStateCancel = "cancel"
)

// Métodos de reparto de una línea de costo base.
const (
	SplitMethodEqual              = "equal"
	SplitMethodByQuantity         = "by_quantity"
	SplitMethodByCurrentCostPrice = "by_current_cost_price"
	SplitMethodByWeight           = "by_weight"
	SplitMethodByVolume           = "by_volume"
)

// IndividualCostSuffix se agrega al nombre de la línea de valoración que recibió gastos individuales.
const IndividualCostSuffix = " + costos individuales"

// ValidSplitMethod indica si m es un método de reparto soportado.
func ValidSplitMethod(m string) bool {
	switch m {
	case SplitMethodEqual, SplitMethodByQuantity, SplitMethodByCurrentCostPrice,
		SplitMethodByWeight, SplitMethodByVolume:
		return true
	}
	return false
}

// LandedCost representa un costo en destino (flete, aduana, manipulación) aplicado a una o
// varias recepciones. PickingIDs son TransactionID de movimientos IN.
// TargetedMoves se carga desde los movimientos de las recepciones; no se persiste.
type LandedCost struct {
	ID                       string
	CompanyID                string
	Name                     string
	Date                     time.Time
	State                    string
	Currency                 Currency
	PickingIDs               []string
	CostLines                []*LandedCostLine
	IndividualCostLines      []*IndividualCostLine
	ValuationAdjustmentLines []*ValuationAdjustmentLine
	TargetedMoves            []*ReceiptMove
	ValidatedAt              *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// LandedCostLine línea de costo base (se reparte entre todos los movimientos según SplitMethod).
type LandedCostLine struct {
	ID          string
	CostID      string
	Name        string
	ProductID   string // producto de servicio (flete, arancel...)
	PriceUnit   decimal.Decimal
	SplitMethod string
	AccountID   string
}

// IndividualCostLine gasto individual: PriceUnit se reparte solo entre los productos de ProductIDs,
// proporcional al costo anterior. ProductID solo se usa para llenar valores por defecto.
type IndividualCostLine struct {
	ID         string
	CostID     string
	Name       string
	ProductID  string
	PriceUnit  decimal.Decimal
	AccountID  string
	ProductIDs []string
}

// ValuationAdjustmentLine una línea por (movimiento, línea de costo base).
// AdditionalIndividualLandedCost es la porción de AdditionalLandedCost que viene de gastos individuales.
type ValuationAdjustmentLine struct {
	ID                             string
	CostID                         string
	CostLineID                     string
	MoveID                         string
	ProductID                      string
	WarehouseID                    string
	Name                           string
	Quantity                       decimal.Decimal
	Weight                         decimal.Decimal
	Volume                         decimal.Decimal
	FormerCost                     decimal.Decimal
	AdditionalLandedCost           decimal.Decimal
	AdditionalIndividualLandedCost decimal.Decimal
	IndividualCostLineID           string
}

// ReceiptMove movimiento de entrada afectado por el costo en destino.
type ReceiptMove struct {
	MoveID      string
	ProductID   string
	ProductName string
	WarehouseID string
	Quantity    decimal.Decimal
	FormerCost  decimal.Decimal
	Weight      decimal.Decimal
	Volume      decimal.Decimal
}

// IsDone indica si el costo ya fue validado (sus líneas son de solo lectura).
func (lc *LandedCost) IsDone() bool {
	return lc.State == LandedCostStateDone
}

// HasTargetedMoves indica si hay movimientos sobre los cuales repartir.
func (lc *LandedCost) HasTargetedMoves() bool {
	return len(lc.TargetedMoves) > 0
}

// AmountTotal suma de las líneas de costo base.
func (lc *LandedCost) AmountTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range lc.CostLines {
		total = total.Add(l.PriceUnit)
	}
	return total
}

// IndividualTotal suma de los gastos individuales.
func (lc *LandedCost) IndividualTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range lc.IndividualCostLines {
		total = total.Add(l.PriceUnit)
	}
	return total
}

// TotalAdjustments suma de AdditionalLandedCost de todas las líneas de valoración.
func (lc *LandedCost) TotalAdjustments() decimal.Decimal {
	total := decimal.Zero
	for _, v := range lc.ValuationAdjustmentLines {
		total = total.Add(v.AdditionalLandedCost)
	}
	return total
}

// AllowedProductIDs productos de los movimientos afectados, sin repetir y en orden de aparición.
func (lc *LandedCost) AllowedProductIDs() []string {
	seen := make(map[string]struct{}, len(lc.TargetedMoves))
	ids := make([]string, 0, len(lc.TargetedMoves))
	for _, m := range lc.TargetedMoves {
		if _, ok := seen[m.ProductID]; ok {
			continue
		}
		seen[m.ProductID] = struct{}{}
		ids = append(ids, m.ProductID)
	}
	return ids
}

// CostLineByID busca una línea de costo base.
func (lc *LandedCost) CostLineByID(id string) *LandedCostLine {
	for _, l := range lc.CostLines {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// ApplyProductDefaults llena nombre, costo y cuenta a partir del producto seleccionado.
func (l *IndividualCostLine) ApplyProductDefaults(p *Product) {
	if p == nil {
		return
	}
	l.ProductID = p.ID
	l.Name = p.Name
	l.PriceUnit = p.Cost
	l.AccountID = p.StockInputAccountID
}

// TargetSet productos destino del reparto, sin duplicados.
func (l *IndividualCostLine) TargetSet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.ProductIDs))
	for _, id := range l.ProductIDs {
		set[id] = struct{}{}
	}
	return set
}

// FinalCost costo anterior más el costo adicional asignado.
func (v *ValuationAdjustmentLine) FinalCost() decimal.Decimal {
	return v.FormerCost.Add(v.AdditionalLandedCost)
}

// UnitFinalCost costo final por unidad; 0 si Quantity es 0.
func (v *ValuationAdjustmentLine) UnitFinalCost() decimal.Decimal {
	if v.Quantity.IsZero() {
		return decimal.Zero
	}
	return v.FinalCost().Div(v.Quantity)
}
