package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
}

// ProductCatalogRepository alta y consulta del catálogo de productos. Cost no se escribe por aquí.
type ProductCatalogRepository interface {
	ProductRepository
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
}
