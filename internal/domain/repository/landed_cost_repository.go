package repository

import (
	"context"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// LandedCostRepository define el puerto de persistencia para costos en destino y sus líneas.
// GetByID y GetForUpdate cargan el costo completo (líneas base, individuales y de valoración);
// TargetedMoves no se persiste, lo arma el caso de uso desde los movimientos de las recepciones.
type LandedCostRepository interface {
	Create(ctx context.Context, cost *entity.LandedCost) error
	GetByID(ctx context.Context, id string) (*entity.LandedCost, error)
	// GetForUpdate bloquea la fila del costo (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.LandedCost, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.LandedCost, error)

	AddIndividualLine(ctx context.Context, line *entity.IndividualCostLine) error
	DeleteIndividualLine(ctx context.Context, costID, lineID string) error

	// ReplaceValuationLines borra las líneas de valoración del costo y guarda las nuevas (mismo lote).
	ReplaceValuationLines(ctx context.Context, costID string, lines []*entity.ValuationAdjustmentLine) error
	// UpdateState persiste State, ValidatedAt y UpdatedAt.
	UpdateState(ctx context.Context, cost *entity.LandedCost) error
	Delete(ctx context.Context, id string) error
}
