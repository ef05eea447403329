package landedcost_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	applc "github.com/jhoicas/landed-cost-api/internal/application/landedcost"
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

const companyID = "co-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "esperado %s, obtenido %s", want, got.String())
}

type fixture struct {
	store   *memStore
	locker  *fakeLocker
	reports *fakeReports
	uc      *applc.UseCase
}

// newFixture: recepción rcv-1 con X (10 uds, 300.00) y Y (5 uds, 700.00); rcv-2 con Z sin costo.
func newFixture() *fixture {
	s := newMemStore()
	s.products["X"] = &entity.Product{ID: "X", CompanyID: companyID, Name: "Producto X", Cost: d("30")}
	s.products["Y"] = &entity.Product{ID: "Y", CompanyID: companyID, Name: "Producto Y", Cost: d("140")}
	s.products["Z"] = &entity.Product{ID: "Z", CompanyID: companyID, Name: "Producto Z", Cost: decimal.Zero}
	s.products["svc-flete"] = &entity.Product{
		ID: "svc-flete", CompanyID: companyID, Name: "Flete urgente", Cost: d("40"), StockInputAccountID: "143505",
	}
	s.products["ajeno"] = &entity.Product{ID: "ajeno", CompanyID: "co-2", Name: "Ajeno", Cost: d("1")}
	s.stock["X"], s.stock["Y"], s.stock["Z"] = d("10"), d("5"), d("2")

	s.receiptCo["rcv-1"] = companyID
	s.receipts["rcv-1"] = []*entity.ReceiptMove{
		{MoveID: "m1", ProductID: "X", ProductName: "Producto X", WarehouseID: "wh-1", Quantity: d("10"), FormerCost: d("300"), Weight: decimal.Zero, Volume: decimal.Zero},
		{MoveID: "m2", ProductID: "Y", ProductName: "Producto Y", WarehouseID: "wh-1", Quantity: d("5"), FormerCost: d("700"), Weight: decimal.Zero, Volume: decimal.Zero},
	}
	s.receiptCo["rcv-2"] = companyID
	s.receipts["rcv-2"] = []*entity.ReceiptMove{
		{MoveID: "m3", ProductID: "Z", ProductName: "Producto Z", WarehouseID: "wh-1", Quantity: d("2"), FormerCost: decimal.Zero, Weight: decimal.Zero, Volume: decimal.Zero},
	}
	s.receiptCo["rcv-otra"] = "co-2"
	s.receipts["rcv-otra"] = []*entity.ReceiptMove{{MoveID: "m9", ProductID: "ajeno", Quantity: d("1"), FormerCost: d("1")}}

	locker := &fakeLocker{}
	reports := &fakeReports{}
	currency := entity.Currency{Code: "COP", Rounding: d("0.01")}
	uc := applc.NewUseCase(memTx{s}, memCostRepo{s}, memMovRepo{s}, memProductRepo{s}, locker, reports, currency, logger.Nop())
	return &fixture{store: s, locker: locker, reports: reports, uc: uc}
}

func (f *fixture) create(t *testing.T, pickings ...string) *dto.LandedCostResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), companyID, dto.CreateLandedCostRequest{
		Name:       "Importación 001",
		PickingIDs: pickings,
		CostLines: []dto.CostLineRequest{
			{Name: "Flete", PriceUnit: d("100"), SplitMethod: entity.SplitMethodByCurrentCostPrice},
		},
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) addIndividual(t *testing.T, costID, price string, products ...string) {
	t.Helper()
	p := d(price)
	_, err := f.uc.AddIndividualLine(context.Background(), companyID, costID, dto.AddIndividualLineRequest{
		Name: "Gasto " + price, PriceUnit: &p, ProductIDs: products,
	})
	require.NoError(t, err)
}

func valuationFor(t *testing.T, out *dto.LandedCostResponse, moveID string) dto.ValuationLineResponse {
	t.Helper()
	for _, v := range out.ValuationLines {
		if v.MoveID == moveID {
			return v
		}
	}
	t.Fatalf("sin línea de valoración para %s", moveID)
	return dto.ValuationLineResponse{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Get / List
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CostoEnBorrador(t *testing.T) {
	f := newFixture()
	out := f.create(t, "rcv-1", "rcv-1")

	assert.Equal(t, entity.LandedCostStateDraft, out.State)
	assert.Equal(t, "COP", out.CurrencyCode)
	assert.Equal(t, []string{"rcv-1"}, out.PickingIDs, "pickings sin repetir")
	require.Len(t, out.CostLines, 1)
	assert.NotEmpty(t, out.CostLines[0].ID)
	assertDec(t, "100", out.AmountTotal)
	assert.Empty(t, out.ValuationLines)

	got, err := f.uc.Get(context.Background(), companyID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestCreate_RecepcionInexistenteODeOtraEmpresa(t *testing.T) {
	f := newFixture()
	for _, picking := range []string{"rcv-nope", "rcv-otra"} {
		_, err := f.uc.Create(context.Background(), companyID, dto.CreateLandedCostRequest{
			Name: "x", PickingIDs: []string{"rcv-1", picking},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound, picking)
	}
	assert.Empty(t, f.store.costs)
}

func TestCreate_MetodoDeRepartoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), companyID, dto.CreateLandedCostRequest{
		Name:       "x",
		PickingIDs: []string{"rcv-1"},
		CostLines:  []dto.CostLineRequest{{Name: "Flete", PriceUnit: d("1"), SplitMethod: "by_color"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_OtraEmpresaEsNoEncontrado(t *testing.T) {
	f := newFixture()
	out := f.create(t, "rcv-1")

	_, err := f.uc.Get(context.Background(), "co-2", out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_PorEmpresa(t *testing.T) {
	f := newFixture()
	f.create(t, "rcv-1")
	f.create(t, "rcv-2")

	list, err := f.uc.List(context.Background(), companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 20, list.Page.Limit)

	other, err := f.uc.List(context.Background(), "co-2", dto.PageRequest{Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos individuales
// ──────────────────────────────────────────────────────────────────────────────

func TestAddIndividualLine_ValoresDelProducto(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")

	out, err := f.uc.AddIndividualLine(context.Background(), companyID, cost.ID, dto.AddIndividualLineRequest{
		ProductID: "svc-flete", ProductIDs: []string{"X", "X"},
	})
	require.NoError(t, err)

	require.Len(t, out.IndividualLines, 1)
	line := out.IndividualLines[0]
	assert.Equal(t, "Flete urgente", line.Name)
	assertDec(t, "40", line.PriceUnit)
	assert.Equal(t, "143505", line.AccountID)
	assert.Equal(t, []string{"X"}, line.ProductIDs)
	assertDec(t, "40", out.IndividualTotal)
}

func TestAddIndividualLine_ValoresExplicitosPrevalecen(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	price := d("12.5")

	out, err := f.uc.AddIndividualLine(context.Background(), companyID, cost.ID, dto.AddIndividualLineRequest{
		ProductID: "svc-flete", Name: "Flete aéreo", PriceUnit: &price, ProductIDs: []string{"Y"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Flete aéreo", out.IndividualLines[0].Name)
	assertDec(t, "12.5", out.IndividualLines[0].PriceUnit)
}

func TestAddIndividualLine_Rechazos(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	price := d("5")

	tests := []struct {
		name string
		in   dto.AddIndividualLineRequest
		want error
	}{
		{"producto fuera de las recepciones", dto.AddIndividualLineRequest{Name: "g", PriceUnit: &price, ProductIDs: []string{"Z"}}, domain.ErrInvalidInput},
		{"sin productos destino", dto.AddIndividualLineRequest{Name: "g", PriceUnit: &price}, domain.ErrInvalidInput},
		{"sin precio ni producto", dto.AddIndividualLineRequest{Name: "g", ProductIDs: []string{"X"}}, domain.ErrInvalidInput},
		{"producto inexistente", dto.AddIndividualLineRequest{ProductID: "nope", ProductIDs: []string{"X"}}, domain.ErrNotFound},
		{"producto de otra empresa", dto.AddIndividualLineRequest{ProductID: "ajeno", ProductIDs: []string{"X"}}, domain.ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.AddIndividualLine(context.Background(), companyID, cost.ID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.costs[cost.ID].IndividualCostLines)
}

func TestRemoveIndividualLine(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	f.addIndividual(t, cost.ID, "10", "X")
	lineID := f.store.costs[cost.ID].IndividualCostLines[0].ID

	require.NoError(t, f.uc.RemoveIndividualLine(context.Background(), companyID, cost.ID, lineID))
	assert.Empty(t, f.store.costs[cost.ID].IndividualCostLines)
	assert.ErrorIs(t, f.uc.RemoveIndividualLine(context.Background(), companyID, cost.ID, lineID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compute / Check
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_RepartoCompletoYVerificacion(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	f.addIndividual(t, cost.ID, "40", "X")

	out, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)

	require.Len(t, out.ValuationLines, 2)
	m1 := valuationFor(t, out, "m1")
	assertDec(t, "70", m1.AdditionalLandedCost)
	assertDec(t, "40", m1.AdditionalIndividualLandedCost)
	assertDec(t, "37", m1.UnitFinalCost)
	assert.Equal(t, "Flete - Producto X"+entity.IndividualCostSuffix, m1.Name)
	assertDec(t, "70", valuationFor(t, out, "m2").AdditionalLandedCost)
	assertDec(t, "140", out.TotalAdjustments)

	assert.Equal(t, []string{"landed-cost:" + cost.ID}, f.locker.keys)
	assert.Equal(t, 1, f.locker.released)
	assert.Len(t, f.store.costs[cost.ID].ValuationAdjustmentLines, 2)

	check, err := f.uc.Check(context.Background(), companyID, cost.ID)
	require.NoError(t, err)
	assert.True(t, check.OK)
}

func TestCompute_RecalcularNoDuplica(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")

	first, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)
	second, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)

	assertDec(t, "100", first.TotalAdjustments)
	assertDec(t, "100", second.TotalAdjustments)
	assert.Len(t, second.ValuationLines, 2)
}

func TestCompute_DivisionPorCeroNoEscribe(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1", "rcv-2")
	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)
	before := cloneCost(f.store.costs[cost.ID])

	f.addIndividual(t, cost.ID, "10", "Z")
	_, err = f.uc.Compute(context.Background(), companyID, cost.ID)

	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Equal(t, before.ValuationAdjustmentLines, f.store.costs[cost.ID].ValuationAdjustmentLines)
	assert.Equal(t, 2, f.locker.released, "el bloqueo se libera también en error")
}

func TestCompute_BloqueoOcupado(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	f.locker.err = fmt.Errorf("%w: cálculo en curso", domain.ErrConflict)

	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, f.store.txCount, "sin bloqueo no se abre transacción")
}

func TestCheck_DetectaLineasAlteradas(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)
	f.store.costs[cost.ID].ValuationAdjustmentLines[0].AdditionalLandedCost = d("31")

	check, err := f.uc.Check(context.Background(), companyID, cost.ID)
	require.NoError(t, err)

	assert.False(t, check.OK)
	assert.Equal(t, "total_mismatch", check.Reason)
	assertDec(t, "100", check.Expected)
	assertDec(t, "101", check.Actual)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate / Delete / Report
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_RevalorizaInventario(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	f.addIndividual(t, cost.ID, "40", "X")
	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)

	out, err := f.uc.Validate(context.Background(), companyID, "user-1", cost.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.LandedCostStateDone, out.State)
	require.NotNil(t, out.ValidatedAt)
	// X: (10*30 + 70) / 10 = 37; Y: (5*140 + 70) / 5 = 154
	assertDec(t, "37", f.store.products["X"].Cost)
	assertDec(t, "154", f.store.products["Y"].Cost)

	require.Len(t, f.store.movements, 2)
	for _, m := range f.store.movements {
		assert.Equal(t, entity.MovementTypeLandedCost, m.Type)
		assert.Equal(t, cost.ID, m.TransactionID)
		assert.True(t, m.Quantity.IsZero())
		assert.Equal(t, "user-1", m.CreatedBy)
	}
	assertDec(t, "70", f.store.movements[0].TotalCost)

	_, err = f.uc.Validate(context.Background(), companyID, "user-1", cost.ID)
	assert.ErrorIs(t, err, domain.ErrLandedCostDone)
	_, err = f.uc.Compute(context.Background(), companyID, cost.ID)
	assert.ErrorIs(t, err, domain.ErrLandedCostDone)
	f.addIndividualFails(t, cost.ID)
}

func (f *fixture) addIndividualFails(t *testing.T, costID string) {
	t.Helper()
	p := d("1")
	_, err := f.uc.AddIndividualLine(context.Background(), companyID, costID, dto.AddIndividualLineRequest{
		Name: "tarde", PriceUnit: &p, ProductIDs: []string{"X"},
	})
	assert.ErrorIs(t, err, domain.ErrLandedCostDone)
}

func TestValidate_SinCalcular(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")

	_, err := f.uc.Validate(context.Background(), companyID, "user-1", cost.ID)
	assert.ErrorIs(t, err, domain.ErrNoValuationLines)
}

func TestValidate_DescuadreNoValida(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)
	f.store.costs[cost.ID].ValuationAdjustmentLines[1].AdditionalLandedCost = d("69")

	_, err = f.uc.Validate(context.Background(), companyID, "user-1", cost.ID)

	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, entity.LandedCostStateDraft, f.store.costs[cost.ID].State)
	assert.Empty(t, f.store.movements)
	assertDec(t, "30", f.store.products["X"].Cost)
}

func TestValidate_FallaAlGuardarHaceRollback(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)
	f.store.failUpdate = errors.New("conexión perdida")

	_, err = f.uc.Validate(context.Background(), companyID, "user-1", cost.ID)

	assert.Error(t, err)
	assert.Empty(t, f.store.movements)
	assertDec(t, "30", f.store.products["X"].Cost)
	assertDec(t, "140", f.store.products["Y"].Cost)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	draft := f.create(t, "rcv-1")
	require.NoError(t, f.uc.Delete(context.Background(), companyID, draft.ID))
	assert.NotContains(t, f.store.costs, draft.ID)

	done := f.create(t, "rcv-1")
	_, err := f.uc.Compute(context.Background(), companyID, done.ID)
	require.NoError(t, err)
	_, err = f.uc.Validate(context.Background(), companyID, "user-1", done.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), companyID, done.ID), domain.ErrLandedCostDone)
}

func TestReport_IncluyeVerificacion(t *testing.T) {
	f := newFixture()
	cost := f.create(t, "rcv-1")
	_, err := f.uc.Compute(context.Background(), companyID, cost.ID)
	require.NoError(t, err)

	pdf, err := f.uc.Report(context.Background(), companyID, cost.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, cost.ID, f.reports.cost.ID)
	assert.True(t, f.reports.check.OK)
}
