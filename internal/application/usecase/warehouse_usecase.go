package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
)

// WarehouseUseCase bodegas donde aterrizan las recepciones.
type WarehouseUseCase struct {
	repo repository.WarehouseCatalogRepository
	now  func() time.Time
}

func NewWarehouseUseCase(repo repository.WarehouseCatalogRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, now: time.Now}
}

// Create da de alta una bodega. Nombre vacío → ErrInvalidInput; repetido en la empresa → ErrDuplicate.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	at := uc.now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return warehouseResponse(w), nil
}

// GetByID bodega de la empresa; la de otra empresa no existe para quien pregunta.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !w.BelongsTo(companyID) {
		return nil, domain.ErrNotFound
	}
	return warehouseResponse(w), nil
}

func (uc *WarehouseUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page = page.Normalize()
	found, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.WarehouseListResponse{Items: make([]dto.WarehouseResponse, 0, len(found)), Page: page.Response()}
	for _, w := range found {
		out.Items = append(out.Items, *warehouseResponse(w))
	}
	return out, nil
}

func warehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
