package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCurrency_DecimalPlaces(t *testing.T) {
	tests := []struct {
		rounding string
		want     int32
	}{
		{"0.01", 2},
		{"0.05", 2},
		{"0.001", 3},
		{"1", 0},
		{"100", 0},
		{"0", 0},
	}
	for _, tc := range tests {
		c := entity.Currency{Code: "T", Rounding: d(tc.rounding)}
		assert.Equal(t, tc.want, c.DecimalPlaces(), "rounding %s", tc.rounding)
	}
}

func TestCurrency_Round(t *testing.T) {
	cop := entity.Currency{Code: "COP", Rounding: d("0.01")}
	assert.True(t, cop.Round(d("10.005")).Equal(d("10.01")))
	assert.True(t, cop.Round(d("10.004")).Equal(d("10")))
	assert.True(t, cop.Round(d("-10.005")).Equal(d("-10.01")))

	nickel := entity.Currency{Code: "CHF", Rounding: d("0.05")}
	assert.True(t, nickel.Round(d("1.02")).Equal(d("1")))
	assert.True(t, nickel.Round(d("1.03")).Equal(d("1.05")))

	none := entity.Currency{Code: "XXX"}
	assert.True(t, none.Round(d("1.23456")).Equal(d("1.23456")))

	assert.True(t, cop.IsZero(d("0.004")))
	assert.False(t, cop.IsZero(d("0.005")))
}

func TestLandedCost_Totales(t *testing.T) {
	lc := &entity.LandedCost{
		CostLines: []*entity.LandedCostLine{
			{ID: "c1", PriceUnit: d("100")},
			{ID: "c2", PriceUnit: d("33.33")},
		},
		IndividualCostLines: []*entity.IndividualCostLine{{ID: "i1", PriceUnit: d("12.5")}},
		ValuationAdjustmentLines: []*entity.ValuationAdjustmentLine{
			{AdditionalLandedCost: d("70")},
			{AdditionalLandedCost: d("75.83")},
		},
	}

	assert.True(t, lc.AmountTotal().Equal(d("133.33")))
	assert.True(t, lc.IndividualTotal().Equal(d("12.5")))
	assert.True(t, lc.TotalAdjustments().Equal(d("145.83")))
	assert.Equal(t, "c2", lc.CostLineByID("c2").ID)
	assert.Nil(t, lc.CostLineByID("nope"))
}

func TestLandedCost_AllowedProductIDs(t *testing.T) {
	lc := &entity.LandedCost{TargetedMoves: []*entity.ReceiptMove{
		{MoveID: "m1", ProductID: "X"},
		{MoveID: "m2", ProductID: "Y"},
		{MoveID: "m3", ProductID: "X"},
	}}

	assert.Equal(t, []string{"X", "Y"}, lc.AllowedProductIDs())
	assert.True(t, lc.HasTargetedMoves())
	assert.False(t, (&entity.LandedCost{}).HasTargetedMoves())
}

func TestLandedCost_Estado(t *testing.T) {
	lc := &entity.LandedCost{State: entity.LandedCostStateDraft}
	assert.False(t, lc.IsDone())
	lc.State = entity.LandedCostStateDone
	assert.True(t, lc.IsDone())
}

func TestValidSplitMethod(t *testing.T) {
	assert.True(t, entity.ValidSplitMethod(entity.SplitMethodByWeight))
	assert.True(t, entity.ValidSplitMethod(entity.SplitMethodEqual))
	assert.False(t, entity.ValidSplitMethod("by_color"))
	assert.False(t, entity.ValidSplitMethod(""))
}

func TestIndividualCostLine_ApplyProductDefaults(t *testing.T) {
	line := &entity.IndividualCostLine{ID: "i1", ProductIDs: []string{"X"}}
	line.ApplyProductDefaults(&entity.Product{
		ID:                  "svc-1",
		Name:                "Flete urgente",
		Cost:                d("45000"),
		StockInputAccountID: "143505",
	})

	assert.Equal(t, "svc-1", line.ProductID)
	assert.Equal(t, "Flete urgente", line.Name)
	assert.True(t, line.PriceUnit.Equal(d("45000")))
	assert.Equal(t, "143505", line.AccountID)
	assert.Equal(t, []string{"X"}, line.ProductIDs, "los productos destino no cambian")

	line.ApplyProductDefaults(nil)
	assert.Equal(t, "svc-1", line.ProductID)
}

func TestIndividualCostLine_TargetSet(t *testing.T) {
	line := &entity.IndividualCostLine{ProductIDs: []string{"X", "Y", "X"}}
	set := line.TargetSet()

	assert.Len(t, set, 2)
	assert.Contains(t, set, "X")
	assert.Contains(t, set, "Y")
}

func TestValuationAdjustmentLine_CostoFinal(t *testing.T) {
	v := &entity.ValuationAdjustmentLine{Quantity: d("4"), FormerCost: d("100"), AdditionalLandedCost: d("20")}
	assert.True(t, v.FinalCost().Equal(d("120")))
	assert.True(t, v.UnitFinalCost().Equal(d("30")))

	v.Quantity = decimal.Zero
	assert.True(t, v.UnitFinalCost().IsZero())
}
