package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/inventory"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

// ReceiptUseCase registra recepciones: varias entradas (IN) en una bodega bajo una misma
// TransactionID, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ReceiptUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	movRepo       repository.InventoryMovementRepository
	log           *logger.Logger
	now           func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	movRepo repository.InventoryMovementRepository,
	log *logger.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		movRepo:       movRepo,
		log:           log.Component("receipts"),
		now:           time.Now,
	}
}

// RegisterReceipt valida bodega y productos de la empresa, y dentro de una transacción por cada línea:
// bloquea el stock, recalcula el costo promedio ponderado, suma la cantidad y guarda el movimiento IN.
func (uc *ReceiptUseCase) RegisterReceipt(ctx context.Context, companyID, userID string, in dto.RegisterReceiptRequest) (*dto.ReceiptResponse, error) {
	if in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !wh.BelongsTo(companyID) {
		return nil, domain.ErrNotFound
	}

	// costos vigentes por producto; un producto repetido en la recepción promedia sobre el costo ya actualizado
	costs := make(map[string]decimal.Decimal, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := costs[l.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		costs[l.ProductID] = product.Cost
	}

	now := uc.now()
	txID := uuid.New().String()
	out := &dto.ReceiptResponse{
		TransactionID: txID,
		WarehouseID:   in.WarehouseID,
		ReceivedAt:    now,
		Moves:         make([]dto.ReceiptMoveResponse, 0, len(in.Lines)),
	}

	err = uc.txRunner.RunReceipt(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, l := range in.Lines {
			// Bloquea la fila en stock (SELECT FOR UPDATE) para evitar condiciones de carrera
			stock, err := stockRepo.GetForUpdate(ctx, l.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			total, err := stockRepo.TotalByProduct(ctx, l.ProductID)
			if err != nil {
				return err
			}
			newCost := inventory.CostCalculator(total, costs[l.ProductID], l.Quantity, l.UnitCost)
			if err := productRepo.UpdateCost(ctx, l.ProductID, newCost); err != nil {
				return err
			}
			costs[l.ProductID] = newCost

			stock.Receive(l.Quantity, now)
			if err := stockRepo.Upsert(ctx, stock); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				TransactionID: txID,
				ProductID:     l.ProductID,
				WarehouseID:   in.WarehouseID,
				Type:          entity.MovementTypeIN,
				Quantity:      l.Quantity,
				UnitCost:      l.UnitCost,
				TotalCost:     l.Quantity.Mul(l.UnitCost),
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			out.Moves = append(out.Moves, receiptMoveResponse(mov))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", txID).
		Str("warehouse_id", in.WarehouseID).
		Int("moves", len(out.Moves)).
		Msg("recepción registrada")
	return out, nil
}

// GetReceipt movimientos IN de una recepción (TransactionID). Una recepción de una bodega de otra
// empresa se trata como inexistente.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, companyID, transactionID string) (*dto.ReceiptResponse, error) {
	moves, err := uc.movRepo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	var out *dto.ReceiptResponse
	for _, m := range moves {
		if m.Type != entity.MovementTypeIN {
			continue
		}
		if out == nil {
			out = &dto.ReceiptResponse{TransactionID: transactionID, WarehouseID: m.WarehouseID, ReceivedAt: m.Date}
		}
		out.Moves = append(out.Moves, receiptMoveResponse(m))
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, out.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !wh.BelongsTo(companyID) {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func receiptMoveResponse(m *entity.InventoryMovement) dto.ReceiptMoveResponse {
	return dto.ReceiptMoveResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		TotalCost: m.TotalCost,
	}
}
