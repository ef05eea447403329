package landedcost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/landedcost"
)

func computedCost(t *testing.T) *entity.LandedCost {
	t.Helper()
	cost := receiptCost()
	cost.CostLines = []*entity.LandedCostLine{
		costLine("c1", "Flete", "100", entity.SplitMethodByCurrentCostPrice),
		costLine("c2", "Aduana", "33.33", entity.SplitMethodEqual),
	}
	cost.IndividualCostLines = []*entity.IndividualCostLine{
		individual("ind-1", "40", "X"),
		individual("ind-2", "12.35", "Y"),
	}
	require.NoError(t, landedcost.Compute(cost))
	return cost
}

func TestChecker_CostoCalculadoCuadra(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := computedCost(t)

	report := checker.Inspect(cost)

	assert.True(t, report.OK)
	assert.Empty(t, report.Reason)
	assert.Equal(t, "lc-1", report.LandedCostID)
	assert.True(t, checker.Check(cost))
}

func TestChecker_Idempotente(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := computedCost(t)
	before := cost.TotalAdjustments()

	first := checker.Check(cost)
	second := checker.Check(cost)

	assert.Equal(t, first, second)
	assert.True(t, before.Equal(cost.TotalAdjustments()), "Check no modifica el costo")

	lineFor(t, cost, "m2", "c2").AdditionalLandedCost = d("999")
	assert.Equal(t, checker.Check(cost), checker.Check(cost))
}

func TestChecker_TotalDescuadrado(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := computedCost(t)
	v := lineFor(t, cost, "m2", "c1")
	v.AdditionalLandedCost = v.AdditionalLandedCost.Add(d("0.01"))

	report := checker.Inspect(cost)

	assert.False(t, report.OK)
	assert.Equal(t, landedcost.ReasonTotalMismatch, report.Reason)
	assertDec(t, "133.33", report.Expected)
	assertDec(t, "133.34", report.Actual)
	assert.False(t, checker.Check(cost))
}

func TestChecker_LineaBaseDescuadrada(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := computedCost(t)
	// mover 5.00 de una línea base a otra conserva el total pero descuadra ambas líneas
	c1 := lineFor(t, cost, "m2", "c1")
	c2 := lineFor(t, cost, "m2", "c2")
	c1.AdditionalLandedCost = c1.AdditionalLandedCost.Sub(d("5"))
	c2.AdditionalLandedCost = c2.AdditionalLandedCost.Add(d("5"))

	report := checker.Inspect(cost)

	assert.False(t, report.OK)
	assert.Equal(t, landedcost.ReasonCostLineMismatch, report.Reason)
	assert.Equal(t, "c1", report.CostLineID)
	assertDec(t, "100", report.Expected)
	assertDec(t, "95", report.Actual)
}

func TestChecker_ToleranciaDePrecision(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := computedCost(t)
	v := lineFor(t, cost, "m1", "c1")
	v.AdditionalLandedCost = v.AdditionalLandedCost.Add(d("0.004"))

	assert.True(t, checker.Check(cost), "diferencias bajo la precisión de la moneda se ignoran")
}

func TestChecker_LoteFallaSiUnCostoFalla(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	good := computedCost(t)
	bad := computedCost(t)
	bad.ID = "lc-bad"
	bad.CostLines[0].PriceUnit = d("101")

	assert.True(t, checker.Check(good, good))
	assert.False(t, checker.Check(good, bad))
	assert.False(t, checker.Check(bad, good))
	assert.True(t, checker.Check(), "sin costos no hay nada que falle")
}

func TestChecker_SoloGastosIndividuales(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := receiptCost()
	cost.IndividualCostLines = []*entity.IndividualCostLine{individual("ind-1", "25", "X", "Y")}
	require.NoError(t, landedcost.Compute(cost))

	assertDec(t, "25", cost.TotalAdjustments())
	assert.True(t, checker.Check(cost))
}

func TestChecker_SinCalcularNoCuadra(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := receiptCost()
	cost.CostLines = []*entity.LandedCostLine{costLine("c1", "Flete", "100", entity.SplitMethodEqual)}

	assert.False(t, checker.Check(cost))
}

func TestChecker_UsaLaPrecisionDeLaMonedaDelCosto(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := receiptCost()
	cost.Currency = entity.Currency{Code: "CLP", Rounding: d("1")}
	cost.CostLines = []*entity.LandedCostLine{costLine("c1", "Flete", "100", entity.SplitMethodEqual)}
	require.NoError(t, landedcost.Compute(cost))

	v := lineFor(t, cost, "m1", "c1")
	v.AdditionalLandedCost = v.AdditionalLandedCost.Add(d("0.4"))
	assert.True(t, checker.Check(cost), "0.4 está bajo la precisión de una moneda sin decimales")

	v.AdditionalLandedCost = v.AdditionalLandedCost.Add(d("0.2"))
	report := checker.Inspect(cost)
	assert.False(t, report.OK)
	assert.Equal(t, landedcost.ReasonTotalMismatch, report.Reason)
}

func TestChecker_MonedaSinRedondeoUsaLaDeLaEmpresa(t *testing.T) {
	checker := landedcost.NewChecker(cop())
	cost := computedCost(t)
	cost.Currency = entity.Currency{Code: "COP"}
	v := lineFor(t, cost, "m1", "c1")
	v.AdditionalLandedCost = v.AdditionalLandedCost.Add(d("0.004"))
	assert.True(t, checker.Check(cost))

	v.AdditionalLandedCost = v.AdditionalLandedCost.Add(d("0.01"))
	assert.False(t, checker.Check(cost))
}
