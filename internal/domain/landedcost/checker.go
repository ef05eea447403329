package landedcost

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// Motivos de falla del CheckReport.
const (
	ReasonTotalMismatch    = "total_mismatch"
	ReasonCostLineMismatch = "cost_line_mismatch"
)

// CheckReport resultado de verificar un costo en destino.
// Expected/Actual son los montos comparados en la primera diferencia encontrada.
type CheckReport struct {
	LandedCostID string
	OK           bool
	Reason       string
	CostLineID   string
	Expected     decimal.Decimal
	Actual       decimal.Decimal
}

// Checker verifica que los ajustes escritos cuadren con los totales del costo, a la precisión
// decimal de la moneda con la que se repartió el costo. La moneda de la empresa solo se usa
// cuando el costo no trae paso de redondeo. No modifica nada.
type Checker struct {
	places int32
}

// NewChecker construye el verificador con la moneda de la empresa.
func NewChecker(companyCurrency entity.Currency) *Checker {
	return &Checker{places: companyCurrency.DecimalPlaces()}
}

// Check devuelve true solo si todos los costos cuadran. Un solo costo descuadrado hace fallar la llamada.
func (c *Checker) Check(costs ...*entity.LandedCost) bool {
	for _, cost := range costs {
		if !c.Inspect(cost).OK {
			return false
		}
	}
	return true
}

// Inspect verifica un costo y describe la primera diferencia.
//  1. Σ AdditionalLandedCost - Σ gastos individuales == AmountTotal.
//  2. Por cada línea base: PriceUnit == Σ (AdditionalLandedCost - AdditionalIndividualLandedCost)
//     de sus líneas de valoración. Las líneas sin línea base deben sumar cero.
func (c *Checker) Inspect(cost *entity.LandedCost) CheckReport {
	report := CheckReport{LandedCostID: cost.ID}
	places := c.placesFor(cost)

	amountTotal := cost.AmountTotal()
	baseAllocated := cost.TotalAdjustments().Sub(cost.IndividualTotal())
	if !isZeroAt(baseAllocated.Sub(amountTotal), places) {
		report.Reason = ReasonTotalMismatch
		report.Expected = amountTotal
		report.Actual = baseAllocated
		return report
	}

	byCostLine := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(cost.CostLines))
	for _, v := range cost.ValuationAdjustmentLines {
		if _, ok := byCostLine[v.CostLineID]; !ok {
			order = append(order, v.CostLineID)
		}
		byCostLine[v.CostLineID] = byCostLine[v.CostLineID].Add(v.AdditionalLandedCost.Sub(v.AdditionalIndividualLandedCost))
	}
	for _, id := range order {
		expected := decimal.Zero
		if cl := cost.CostLineByID(id); cl != nil && id != "" {
			expected = cl.PriceUnit
		}
		if !isZeroAt(expected.Sub(byCostLine[id]), places) {
			report.Reason = ReasonCostLineMismatch
			report.CostLineID = id
			report.Expected = expected
			report.Actual = byCostLine[id]
			return report
		}
	}

	report.OK = true
	return report
}

func (c *Checker) placesFor(cost *entity.LandedCost) int32 {
	if cost.Currency.Rounding.IsPositive() {
		return cost.Currency.DecimalPlaces()
	}
	return c.places
}

func isZeroAt(v decimal.Decimal, places int32) bool {
	return v.Round(places).IsZero()
}
