package repository

import (
	"context"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
}

// WarehouseCatalogRepository alta y listado de bodegas.
type WarehouseCatalogRepository interface {
	WarehouseRepository
	Create(ctx context.Context, w *entity.Warehouse) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error)
}
