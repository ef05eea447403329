package landedcost

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// individualShare valor acumulado para una línea de valoración. Si varios gastos individuales
// tocan la misma línea, Value se suma y SourceLineID queda con el último (última escritura gana).
type individualShare struct {
	Value        decimal.Decimal
	SourceLineID string
}

// AllocateIndividualCosts reparte cada gasto individual entre las líneas de valoración de sus
// productos, proporcional al costo anterior. Debe correr después de AllocateBaseCosts.
//
// Un costo sin movimientos afectados no se toca. Si el costo anterior de los productos de un
// gasto suma cero devuelve domain.ErrDivisionByZero sin modificar ninguna línea.
// Correrlo dos veces sobre las mismas líneas duplica AdditionalLandedCost.
func AllocateIndividualCosts(cost *entity.LandedCost) error {
	if !cost.HasTargetedMoves() {
		return nil
	}

	totalCostByProduct := make(map[string]decimal.Decimal)
	for _, v := range cost.ValuationAdjustmentLines {
		// numerador y total usan el mismo costo redondeado, si no los fragmentos no suman el gasto
		totalCostByProduct[v.ProductID] = totalCostByProduct[v.ProductID].Add(cost.Currency.Round(v.FormerCost))
	}

	shares := make(map[*entity.ValuationAdjustmentLine]*individualShare)
	order := make([]*entity.ValuationAdjustmentLine, 0, len(cost.ValuationAdjustmentLines))

	for _, line := range cost.IndividualCostLines {
		targets := line.TargetSet()
		totalCost := decimal.Zero
		for p := range targets {
			totalCost = totalCost.Add(totalCostByProduct[p])
		}
		dist := NewResidualDistributor(cost.Currency.Rounding, line.PriceUnit)

		for _, v := range cost.ValuationAdjustmentLines {
			if v.ProductID == "" {
				continue
			}
			if _, ok := targets[v.ProductID]; !ok {
				continue
			}
			if totalCost.IsZero() {
				return fmt.Errorf("%w: gasto individual %q", domain.ErrDivisionByZero, line.Name)
			}
			// former * (price / total), multiplicando primero para no arrastrar ruido de la división
			value := dist.Distribute(cost.Currency.Round(v.FormerCost).Mul(line.PriceUnit).Div(totalCost))

			share, ok := shares[v]
			if !ok {
				shares[v] = &individualShare{Value: value, SourceLineID: line.ID}
				order = append(order, v)
				continue
			}
			share.Value = share.Value.Add(value)
			share.SourceLineID = line.ID
		}
	}

	for _, v := range order {
		share := shares[v]
		v.AdditionalLandedCost = v.AdditionalLandedCost.Add(share.Value)
		v.AdditionalIndividualLandedCost = share.Value
		v.IndividualCostLineID = share.SourceLineID
		v.Name += entity.IndividualCostSuffix
	}
	return nil
}
