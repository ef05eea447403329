package landedcost

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/inventory"
	"github.com/jhoicas/landed-cost-api/internal/domain/landedcost"
	"github.com/jhoicas/landed-cost-api/internal/domain/repository"
	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

// UseCase casos de uso de costos en destino: creación, gastos individuales, cálculo, verificación,
// validación (revaloriza inventario) y reporte.
// Compute y Validate toman un bloqueo por costo y trabajan en una sola transacción.
type UseCase struct {
	txRunner    TxRunner
	costRepo    repository.LandedCostRepository
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
	locker      Locker
	reports     ReportGenerator
	currency    entity.Currency
	checker     *landedcost.Checker
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. currency es la moneda de la empresa (redondeo y verificación).
func NewUseCase(
	txRunner TxRunner,
	costRepo repository.LandedCostRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	locker Locker,
	reports ReportGenerator,
	currency entity.Currency,
	log *logger.Logger,
) *UseCase {
	if locker == nil {
		locker = NoopLocker{}
	}
	return &UseCase{
		txRunner:    txRunner,
		costRepo:    costRepo,
		movRepo:     movRepo,
		productRepo: productRepo,
		locker:      locker,
		reports:     reports,
		currency:    currency,
		checker:     landedcost.NewChecker(currency),
		log:         log.Component("landed_cost"),
		now:         time.Now,
	}
}

// Create crea un costo en borrador sobre recepciones de la empresa.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateLandedCostRequest) (*dto.LandedCostResponse, error) {
	if in.Name == "" || len(in.PickingIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	pickingIDs := distinct(in.PickingIDs)
	if len(pickingIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireReceipts(ctx, companyID, pickingIDs); err != nil {
		return nil, err
	}

	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	cost := &entity.LandedCost{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		Date:       date,
		State:      entity.LandedCostStateDraft,
		Currency:   uc.currency,
		PickingIDs: pickingIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, l := range in.CostLines {
		if l.Name == "" || !entity.ValidSplitMethod(l.SplitMethod) {
			return nil, domain.ErrInvalidInput
		}
		cost.CostLines = append(cost.CostLines, &entity.LandedCostLine{
			ID:          uuid.New().String(),
			CostID:      cost.ID,
			Name:        l.Name,
			ProductID:   l.ProductID,
			PriceUnit:   l.PriceUnit,
			SplitMethod: l.SplitMethod,
			AccountID:   l.AccountID,
		})
	}
	if err := uc.costRepo.Create(ctx, cost); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("landed_cost_id", cost.ID).
		Strs("picking_ids", pickingIDs).
		Str("amount_total", cost.AmountTotal().String()).
		Msg("costo en destino creado")
	return toLandedCostResponse(cost), nil
}

// requireReceipts verifica que cada picking sea una recepción con movimientos IN de la empresa.
func (uc *UseCase) requireReceipts(ctx context.Context, companyID string, pickingIDs []string) error {
	for _, id := range pickingIDs {
		moves, err := uc.movRepo.ListReceiptMoves(ctx, companyID, []string{id})
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
	}
	return nil
}

// Get obtiene un costo con sus líneas.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.LandedCostResponse, error) {
	cost, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toLandedCostResponse(cost), nil
}

// List lista cabeceras de costos de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.LandedCostListResponse, error) {
	page = page.Normalize()
	costs, err := uc.costRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.LandedCostListResponse{
		Items: make([]dto.LandedCostResponse, 0, len(costs)),
		Page:  page.Response(),
	}
	for _, c := range costs {
		out.Items = append(out.Items, *toLandedCostResponse(c))
	}
	return out, nil
}

// AddIndividualLine agrega un gasto individual a un costo en borrador.
// Con ProductID se llenan nombre, precio y cuenta desde el producto; lo enviado explícitamente prevalece.
// Los productos destino deben estar entre los productos de las recepciones.
func (uc *UseCase) AddIndividualLine(ctx context.Context, companyID, costID string, in dto.AddIndividualLineRequest) (*dto.LandedCostResponse, error) {
	cost, err := uc.loadDraft(ctx, companyID, costID)
	if err != nil {
		return nil, err
	}

	line := &entity.IndividualCostLine{ID: uuid.New().String(), CostID: cost.ID}
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		line.ApplyProductDefaults(product)
	}
	if in.Name != "" {
		line.Name = in.Name
	}
	if in.PriceUnit != nil {
		line.PriceUnit = *in.PriceUnit
	}
	if in.AccountID != "" {
		line.AccountID = in.AccountID
	}
	if line.Name == "" || (in.ProductID == "" && in.PriceUnit == nil) {
		return nil, domain.ErrInvalidInput
	}

	moves, err := uc.movRepo.ListReceiptMoves(ctx, companyID, cost.PickingIDs)
	if err != nil {
		return nil, err
	}
	cost.TargetedMoves = moves
	allowed := make(map[string]struct{})
	for _, id := range cost.AllowedProductIDs() {
		allowed[id] = struct{}{}
	}
	line.ProductIDs = distinct(in.ProductIDs)
	if len(line.ProductIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, id := range line.ProductIDs {
		if _, ok := allowed[id]; !ok {
			return nil, fmt.Errorf("%w: el producto %s no está en las recepciones", domain.ErrInvalidInput, id)
		}
	}

	if err := uc.costRepo.AddIndividualLine(ctx, line); err != nil {
		return nil, err
	}
	cost.IndividualCostLines = append(cost.IndividualCostLines, line)
	return toLandedCostResponse(cost), nil
}

// RemoveIndividualLine elimina un gasto individual de un costo en borrador.
func (uc *UseCase) RemoveIndividualLine(ctx context.Context, companyID, costID, lineID string) error {
	if _, err := uc.loadDraft(ctx, companyID, costID); err != nil {
		return err
	}
	return uc.costRepo.DeleteIndividualLine(ctx, costID, lineID)
}

// Compute recalcula las líneas de valoración: reparte líneas base y gastos individuales y
// reemplaza las líneas guardadas. Si el reparto falla no se escribe nada.
func (uc *UseCase) Compute(ctx context.Context, companyID, id string) (*dto.LandedCostResponse, error) {
	release, err := uc.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, err
	}
	defer uc.release(release, id)

	var result *entity.LandedCost
	err = uc.txRunner.RunLandedCost(ctx, func(
		costRepo repository.LandedCostRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		cost, err := lockDraft(ctx, costRepo, companyID, id)
		if err != nil {
			return err
		}
		moves, err := movRepo.ListReceiptMoves(ctx, cost.CompanyID, cost.PickingIDs)
		if err != nil {
			return err
		}
		cost.TargetedMoves = moves
		if err := landedcost.Compute(cost); err != nil {
			return err
		}
		if err := costRepo.ReplaceValuationLines(ctx, cost.ID, cost.ValuationAdjustmentLines); err != nil {
			return err
		}
		cost.UpdatedAt = uc.now()
		if err := costRepo.UpdateState(ctx, cost); err != nil {
			return err
		}
		result = cost
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) {
			uc.log.Warn().Err(err).Str("landed_cost_id", id).Msg("cálculo de costo en destino rechazado")
		}
		return nil, err
	}

	uc.log.Info().
		Str("landed_cost_id", id).
		Int("lines", len(result.ValuationAdjustmentLines)).
		Str("total", result.TotalAdjustments().String()).
		Msg("costo en destino calculado")
	return toLandedCostResponse(result), nil
}

// Check verifica que las líneas guardadas cuadren con los totales del costo. Solo lectura.
func (uc *UseCase) Check(ctx context.Context, companyID, id string) (*dto.CheckResponse, error) {
	cost, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCheckResponse(uc.checker.Inspect(cost)), nil
}

// Validate aplica el costo: exige líneas calculadas que cuadren, revaloriza el costo promedio de
// cada producto, registra un movimiento LANDED_COST por línea con valor y deja el costo en done.
func (uc *UseCase) Validate(ctx context.Context, companyID, userID, id string) (*dto.LandedCostResponse, error) {
	release, err := uc.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, err
	}
	defer uc.release(release, id)

	var result *entity.LandedCost
	err = uc.txRunner.RunLandedCost(ctx, func(
		costRepo repository.LandedCostRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		cost, err := lockDraft(ctx, costRepo, companyID, id)
		if err != nil {
			return err
		}
		if len(cost.ValuationAdjustmentLines) == 0 {
			return domain.ErrNoValuationLines
		}
		if report := uc.checker.Inspect(cost); !report.OK {
			return fmt.Errorf("%w: %s (esperado %s, obtenido %s)",
				domain.ErrInvariantViolation, report.Reason, report.Expected, report.Actual)
		}

		now := uc.now()
		order, additional := additionalByProduct(cost.ValuationAdjustmentLines)
		for _, productID := range order {
			product, err := productRepo.GetByID(ctx, productID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
			}
			qty, err := stockRepo.TotalByProduct(ctx, productID)
			if err != nil {
				return err
			}
			newCost := inventory.ApplyAdditionalValue(qty, product.Cost, additional[productID])
			if err := productRepo.UpdateCost(ctx, productID, newCost); err != nil {
				return err
			}
		}
		for _, v := range cost.ValuationAdjustmentLines {
			if v.AdditionalLandedCost.IsZero() {
				continue
			}
			mov := &entity.InventoryMovement{
				TransactionID: cost.ID,
				ProductID:     v.ProductID,
				WarehouseID:   v.WarehouseID,
				Type:          entity.MovementTypeLandedCost,
				Quantity:      decimal.Zero,
				UnitCost:      decimal.Zero,
				TotalCost:     v.AdditionalLandedCost,
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}

		cost.State = entity.LandedCostStateDone
		cost.ValidatedAt = &now
		cost.UpdatedAt = now
		if err := costRepo.UpdateState(ctx, cost); err != nil {
			return err
		}
		result = cost
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			uc.log.Warn().Err(err).Str("landed_cost_id", id).Msg("validación rechazada: ajustes descuadrados")
		}
		return nil, err
	}

	uc.log.Info().
		Str("landed_cost_id", id).
		Str("user_id", userID).
		Str("total", result.TotalAdjustments().String()).
		Msg("costo en destino validado")
	return toLandedCostResponse(result), nil
}

// Delete elimina un costo en borrador con todas sus líneas.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.loadDraft(ctx, companyID, id); err != nil {
		return err
	}
	return uc.costRepo.Delete(ctx, id)
}

// Report genera el PDF de líneas de valoración con el resultado de la verificación.
func (uc *UseCase) Report(ctx context.Context, companyID, id string) ([]byte, error) {
	cost, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateLandedCostPDF(ctx, cost, uc.checker.Inspect(cost))
}

func (uc *UseCase) load(ctx context.Context, companyID, id string) (*entity.LandedCost, error) {
	cost, err := uc.costRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cost == nil || cost.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return cost, nil
}

func (uc *UseCase) loadDraft(ctx context.Context, companyID, id string) (*entity.LandedCost, error) {
	cost, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if cost.IsDone() {
		return nil, domain.ErrLandedCostDone
	}
	return cost, nil
}

func lockDraft(ctx context.Context, costRepo repository.LandedCostRepository, companyID, id string) (*entity.LandedCost, error) {
	cost, err := costRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if cost == nil || cost.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if cost.IsDone() {
		return nil, domain.ErrLandedCostDone
	}
	return cost, nil
}

func (uc *UseCase) release(release func(context.Context) error, id string) {
	// ctx propio: el del request puede estar cancelado y el bloqueo debe liberarse igual
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := release(ctx); err != nil {
		uc.log.Warn().Err(err).Str("landed_cost_id", id).Msg("no se pudo liberar el bloqueo")
	}
}

func lockKey(id string) string {
	return "landed-cost:" + id
}

// additionalByProduct suma el valor adicional por producto, en orden de aparición.
func additionalByProduct(lines []*entity.ValuationAdjustmentLine) ([]string, map[string]decimal.Decimal) {
	order := make([]string, 0, len(lines))
	sums := make(map[string]decimal.Decimal, len(lines))
	for _, v := range lines {
		if _, ok := sums[v.ProductID]; !ok {
			order = append(order, v.ProductID)
			sums[v.ProductID] = decimal.Zero
		}
		sums[v.ProductID] = sums[v.ProductID].Add(v.AdditionalLandedCost)
	}
	return order, sums
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
