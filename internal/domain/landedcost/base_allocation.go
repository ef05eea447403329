package landedcost

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// BuildValuationLines crea una línea de valoración por (movimiento, línea de costo base).
// Los movimientos con cantidad cero se omiten. Sin líneas base se crea una línea por movimiento
// con CostLineID vacío para que los gastos individuales tengan dónde repartirse.
func BuildValuationLines(cost *entity.LandedCost) []*entity.ValuationAdjustmentLine {
	lines := make([]*entity.ValuationAdjustmentLine, 0, len(cost.TargetedMoves)*max(len(cost.CostLines), 1))
	for _, m := range cost.TargetedMoves {
		if m.Quantity.IsZero() {
			continue
		}
		if len(cost.CostLines) == 0 {
			lines = append(lines, newValuationLine(cost, nil, m))
			continue
		}
		for _, cl := range cost.CostLines {
			lines = append(lines, newValuationLine(cost, cl, m))
		}
	}
	return lines
}

// El costo anterior queda redondeado a la moneda del costo: los totales del reparto se
// calculan sobre ese mismo valor y así los fragmentos suman exactamente el gasto.
func newValuationLine(cost *entity.LandedCost, cl *entity.LandedCostLine, m *entity.ReceiptMove) *entity.ValuationAdjustmentLine {
	v := &entity.ValuationAdjustmentLine{
		CostID:                         cost.ID,
		MoveID:                         m.MoveID,
		ProductID:                      m.ProductID,
		WarehouseID:                    m.WarehouseID,
		Name:                           m.ProductName,
		Quantity:                       m.Quantity,
		Weight:                         m.Weight,
		Volume:                         m.Volume,
		FormerCost:                     cost.Currency.Round(m.FormerCost),
		AdditionalLandedCost:           decimal.Zero,
		AdditionalIndividualLandedCost: decimal.Zero,
	}
	if cl != nil {
		v.CostLineID = cl.ID
		v.Name = cl.Name + " - " + m.ProductName
	}
	return v
}

type moveTotals struct {
	quantity decimal.Decimal
	weight   decimal.Decimal
	volume   decimal.Decimal
	cost     decimal.Decimal
	lines    int64
}

func totalsOf(cost *entity.LandedCost) moveTotals {
	t := moveTotals{quantity: decimal.Zero, weight: decimal.Zero, volume: decimal.Zero, cost: decimal.Zero}
	for _, m := range cost.TargetedMoves {
		if m.Quantity.IsZero() {
			continue
		}
		t.quantity = t.quantity.Add(m.Quantity)
		t.weight = t.weight.Add(m.Weight)
		t.volume = t.volume.Add(m.Volume)
		t.cost = t.cost.Add(cost.Currency.Round(m.FormerCost))
		t.lines++
	}
	return t
}

// AllocateBaseCosts reparte cada línea de costo base entre sus líneas de valoración según el
// método de reparto. Si el total del método es cero se reparte en partes iguales.
func AllocateBaseCosts(cost *entity.LandedCost) {
	if !cost.HasTargetedMoves() {
		return
	}
	totals := totalsOf(cost)
	if totals.lines == 0 {
		return
	}
	for _, cl := range cost.CostLines {
		dist := NewResidualDistributor(cost.Currency.Rounding, cl.PriceUnit)
		for _, v := range cost.ValuationAdjustmentLines {
			if v.CostLineID == "" || v.CostLineID != cl.ID {
				continue
			}
			value := dist.Distribute(splitValue(cl, v, totals))
			v.AdditionalLandedCost = v.AdditionalLandedCost.Add(value)
		}
	}
}

// splitValue valor sin redondear de la línea v. Se multiplica antes de dividir para que los
// valores exactos sigan exactos antes del redondeo hacia arriba.
func splitValue(cl *entity.LandedCostLine, v *entity.ValuationAdjustmentLine, t moveTotals) decimal.Decimal {
	switch {
	case cl.SplitMethod == entity.SplitMethodByQuantity && !t.quantity.IsZero():
		return v.Quantity.Mul(cl.PriceUnit).Div(t.quantity)
	case cl.SplitMethod == entity.SplitMethodByWeight && !t.weight.IsZero():
		return v.Weight.Mul(cl.PriceUnit).Div(t.weight)
	case cl.SplitMethod == entity.SplitMethodByVolume && !t.volume.IsZero():
		return v.Volume.Mul(cl.PriceUnit).Div(t.volume)
	case cl.SplitMethod == entity.SplitMethodByCurrentCostPrice && !t.cost.IsZero():
		return v.FormerCost.Mul(cl.PriceUnit).Div(t.cost)
	default:
		return cl.PriceUnit.Div(decimal.NewFromInt(t.lines))
	}
}
