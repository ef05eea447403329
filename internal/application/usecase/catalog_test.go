package usecase_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/application/usecase"
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

type memProducts map[string]*entity.Product

var _ repository.ProductCatalogRepository = memProducts{}

func (m memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	m[p.ID] = &cp
	return nil
}

func (m memProducts) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m[p.ID] = &cp
	return nil
}

func (m memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m memProducts) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range m {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memProducts) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m memProducts) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	p, ok := m[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

type memWarehouses map[string]*entity.Warehouse

var _ repository.WarehouseCatalogRepository = memWarehouses{}

func (m memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	for _, other := range m {
		if other.CompanyID == w.CompanyID && other.Name == w.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *w
	m[w.ID] = &cp
	return nil
}

func (m memWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := m[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (m memWarehouses) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range m {
		if w.CompanyID == companyID {
			out = append(out, w)
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

func TestProductUseCase_CreateYConsulta(t *testing.T) {
	ctx := context.Background()
	repo := memProducts{}
	uc := usecase.NewProductUseCase(repo)

	flete, err := uc.Create(ctx, "co-1", dto.CreateProductRequest{
		SKU:                 "SRV-FLETE",
		Name:                "Flete",
		Cost:                decimal.NewFromInt(40),
		StockInputAccountID: "143505",
	})
	require.NoError(t, err)
	assert.True(t, flete.Cost.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "143505", flete.StockInputAccountID)

	_, err = uc.Create(ctx, "co-1", dto.CreateProductRequest{
		SKU:    "P-X",
		Name:   "Producto X",
		Weight: decimal.RequireFromString("2.5"),
		Volume: decimal.RequireFromString("0.1"),
	})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, "co-1", flete.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flete", got.Name)

	_, err = uc.GetByID(ctx, "co-2", flete.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "co-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "P-X", list.Items[0].SKU)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestProductUseCase_CreateRechazos(t *testing.T) {
	ctx := context.Background()
	repo := memProducts{
		"p1": {ID: "p1", CompanyID: "co-1", SKU: "P-X", Name: "Producto X"},
	}
	uc := usecase.NewProductUseCase(repo)

	tests := []struct {
		name    string
		company string
		in      dto.CreateProductRequest
		wantErr error
	}{
		{"sku repetido", "co-1", dto.CreateProductRequest{SKU: "P-X", Name: "Otro"}, domain.ErrDuplicate},
		{"sin nombre", "co-1", dto.CreateProductRequest{SKU: "P-Y"}, domain.ErrInvalidInput},
		{"peso negativo", "co-1", dto.CreateProductRequest{SKU: "P-Y", Name: "Y", Weight: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.company, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// el mismo SKU en otra empresa es válido
	_, err := uc.Create(ctx, "co-2", dto.CreateProductRequest{SKU: "P-X", Name: "Producto X"})
	assert.NoError(t, err)
}

func TestProductUseCase_UpdateNoTocaCosto(t *testing.T) {
	ctx := context.Background()
	repo := memProducts{
		"p1": {ID: "p1", CompanyID: "co-1", SKU: "P-X", Name: "Producto X", Cost: decimal.NewFromInt(30)},
	}
	uc := usecase.NewProductUseCase(repo)

	name := "Producto X v2"
	weight := decimal.NewFromInt(3)
	out, err := uc.Update(ctx, "co-1", "p1", dto.UpdateProductRequest{Name: &name, Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, repo["p1"].Weight.Equal(weight))
	assert.True(t, repo["p1"].Cost.Equal(decimal.NewFromInt(30)))

	negative := decimal.NewFromInt(-2)
	_, err = uc.Update(ctx, "co-1", "p1", dto.UpdateProductRequest{Volume: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "co-2", "p1", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseUseCase(t *testing.T) {
	ctx := context.Background()
	repo := memWarehouses{}
	uc := usecase.NewWarehouseUseCase(repo)

	_, err := uc.Create(ctx, "co-1", dto.CreateWarehouseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "co-1", dto.CreateWarehouseRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	w, err := uc.Create(ctx, "co-1", dto.CreateWarehouseRequest{Name: " Principal ", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "Principal", w.Name)

	_, err = uc.Create(ctx, "co-1", dto.CreateWarehouseRequest{Name: "Principal"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, "co-2", dto.CreateWarehouseRequest{Name: "Principal"})
	assert.NoError(t, err, "el nombre es único solo dentro de la empresa")

	got, err := uc.GetByID(ctx, "co-1", w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", got.Address)

	_, err = uc.GetByID(ctx, "co-2", w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "co-1", dto.PageRequest{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Page.Limit)
}
