package landedcost_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/landedcost"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

// memStore estado en memoria compartido por los repos falsos. memTx lo restaura si fn falla.
type memStore struct {
	costs      map[string]*entity.LandedCost
	receipts   map[string][]*entity.ReceiptMove // por TransactionID
	receiptCo  map[string]string                // TransactionID -> empresa
	products   map[string]*entity.Product
	stock      map[string]decimal.Decimal // por producto (todas las bodegas)
	movements  []*entity.InventoryMovement
	txCount    int
	failUpdate error
}

func newMemStore() *memStore {
	return &memStore{
		costs:     map[string]*entity.LandedCost{},
		receipts:  map[string][]*entity.ReceiptMove{},
		receiptCo: map[string]string{},
		products:  map[string]*entity.Product{},
		stock:     map[string]decimal.Decimal{},
	}
}

func cloneCost(c *entity.LandedCost) *entity.LandedCost {
	out := *c
	out.PickingIDs = append([]string(nil), c.PickingIDs...)
	out.CostLines = nil
	for _, l := range c.CostLines {
		cp := *l
		out.CostLines = append(out.CostLines, &cp)
	}
	out.IndividualCostLines = nil
	for _, l := range c.IndividualCostLines {
		cp := *l
		cp.ProductIDs = append([]string(nil), l.ProductIDs...)
		out.IndividualCostLines = append(out.IndividualCostLines, &cp)
	}
	out.ValuationAdjustmentLines = nil
	for _, v := range c.ValuationAdjustmentLines {
		cp := *v
		out.ValuationAdjustmentLines = append(out.ValuationAdjustmentLines, &cp)
	}
	out.TargetedMoves = nil
	return &out
}

type snapshot struct {
	costs     map[string]*entity.LandedCost
	products  map[string]entity.Product
	stock     map[string]decimal.Decimal
	movements int
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		costs:     map[string]*entity.LandedCost{},
		products:  map[string]entity.Product{},
		stock:     map[string]decimal.Decimal{},
		movements: len(s.movements),
	}
	for k, c := range s.costs {
		snap.costs[k] = cloneCost(c)
	}
	for k, p := range s.products {
		snap.products[k] = *p
	}
	for k, q := range s.stock {
		snap.stock[k] = q
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.costs = snap.costs
	for k, p := range snap.products {
		cp := p
		s.products[k] = &cp
	}
	s.stock = snap.stock
	s.movements = s.movements[:snap.movements]
}

// ── LandedCostRepository ─────────────────────────────────────────────────────

type memCostRepo struct{ s *memStore }

var _ repository.LandedCostRepository = memCostRepo{}

func (r memCostRepo) Create(_ context.Context, cost *entity.LandedCost) error {
	if _, ok := r.s.costs[cost.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.costs[cost.ID] = cloneCost(cost)
	return nil
}

func (r memCostRepo) GetByID(_ context.Context, id string) (*entity.LandedCost, error) {
	c, ok := r.s.costs[id]
	if !ok {
		return nil, nil
	}
	return cloneCost(c), nil
}

func (r memCostRepo) GetForUpdate(ctx context.Context, id string) (*entity.LandedCost, error) {
	return r.GetByID(ctx, id)
}

func (r memCostRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.LandedCost, error) {
	var out []*entity.LandedCost
	for _, c := range r.s.costs {
		if c.CompanyID == companyID {
			out = append(out, cloneCost(c))
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memCostRepo) AddIndividualLine(_ context.Context, line *entity.IndividualCostLine) error {
	c, ok := r.s.costs[line.CostID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *line
	c.IndividualCostLines = append(c.IndividualCostLines, &cp)
	return nil
}

func (r memCostRepo) DeleteIndividualLine(_ context.Context, costID, lineID string) error {
	c, ok := r.s.costs[costID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, l := range c.IndividualCostLines {
		if l.ID == lineID {
			c.IndividualCostLines = append(c.IndividualCostLines[:i], c.IndividualCostLines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memCostRepo) ReplaceValuationLines(_ context.Context, costID string, lines []*entity.ValuationAdjustmentLine) error {
	c, ok := r.s.costs[costID]
	if !ok {
		return domain.ErrNotFound
	}
	c.ValuationAdjustmentLines = nil
	for i, v := range lines {
		cp := *v
		cp.ID = fmt.Sprintf("%s-v%d", costID, i)
		cp.CostID = costID
		c.ValuationAdjustmentLines = append(c.ValuationAdjustmentLines, &cp)
	}
	return nil
}

func (r memCostRepo) UpdateState(_ context.Context, cost *entity.LandedCost) error {
	if r.s.failUpdate != nil {
		return r.s.failUpdate
	}
	c, ok := r.s.costs[cost.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.State = cost.State
	c.ValidatedAt = cost.ValidatedAt
	c.UpdatedAt = cost.UpdatedAt
	return nil
}

func (r memCostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.costs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.costs, id)
	return nil
}

// ── InventoryMovementRepository ──────────────────────────────────────────────

type memMovRepo struct{ s *memStore }

var _ repository.InventoryMovementRepository = memMovRepo{}

func (r memMovRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r memMovRepo) ListByTransaction(_ context.Context, txID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.TransactionID == txID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r memMovRepo) ListReceiptMoves(_ context.Context, companyID string, txIDs []string) ([]*entity.ReceiptMove, error) {
	var out []*entity.ReceiptMove
	for _, id := range txIDs {
		if r.s.receiptCo[id] != companyID {
			continue
		}
		for _, m := range r.s.receipts[id] {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── StockRepository / ProductRepository ──────────────────────────────────────

type memStockRepo struct{ s *memStore }

var _ repository.StockRepository = memStockRepo{}

func (r memStockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	r.s.stock[st.ProductID] = st.Quantity
	return nil
}

func (r memStockRepo) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: r.s.stock[productID]}, nil
}

func (r memStockRepo) TotalByProduct(_ context.Context, productID string) (decimal.Decimal, error) {
	return r.s.stock[productID], nil
}

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = memProductRepo{}

func (r memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memProductRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

// ── TxRunner, Locker, ReportGenerator ────────────────────────────────────────

type memTx struct{ s *memStore }

func (t memTx) RunLandedCost(_ context.Context, fn func(
	costRepo repository.LandedCostRepository,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.s.txCount++
	snap := t.s.snapshot()
	if err := fn(memCostRepo{t.s}, memMovRepo{t.s}, memStockRepo{t.s}, memProductRepo{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type fakeLocker struct {
	keys     []string
	released int
	err      error
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

type fakeReports struct {
	cost  *entity.LandedCost
	check landedcost.CheckReport
}

func (f *fakeReports) GenerateLandedCostPDF(_ context.Context, cost *entity.LandedCost, check landedcost.CheckReport) ([]byte, error) {
	f.cost = cost
	f.check = check
	return []byte("%PDF-1.3"), nil
}
