package landedcost

import (
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// Compute reconstruye las líneas de valoración del costo y reparte líneas base y gastos
// individuales. Las líneas solo se reemplazan en cost si todo el cálculo termina sin error.
// Un costo sin movimientos afectados queda sin líneas.
func Compute(cost *entity.LandedCost) error {
	if !cost.HasTargetedMoves() {
		cost.ValuationAdjustmentLines = nil
		return nil
	}

	work := *cost
	work.ValuationAdjustmentLines = BuildValuationLines(cost)
	if len(work.ValuationAdjustmentLines) == 0 {
		return domain.ErrNoValuationLines
	}

	AllocateBaseCosts(&work)
	if err := AllocateIndividualCosts(&work); err != nil {
		return err
	}

	cost.ValuationAdjustmentLines = work.ValuationAdjustmentLines
	return nil
}
