package landedcost

import (
	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/landedcost"
)

func toLandedCostResponse(c *entity.LandedCost) *dto.LandedCostResponse {
	out := &dto.LandedCostResponse{
		ID:               c.ID,
		Name:             c.Name,
		Date:             c.Date,
		State:            c.State,
		CurrencyCode:     c.Currency.Code,
		PickingIDs:       c.PickingIDs,
		AmountTotal:      c.AmountTotal(),
		IndividualTotal:  c.IndividualTotal(),
		TotalAdjustments: c.TotalAdjustments(),
		CostLines:        make([]dto.CostLineResponse, 0, len(c.CostLines)),
		IndividualLines:  make([]dto.IndividualLineResponse, 0, len(c.IndividualCostLines)),
		ValuationLines:   make([]dto.ValuationLineResponse, 0, len(c.ValuationAdjustmentLines)),
		ValidatedAt:      c.ValidatedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	for _, l := range c.CostLines {
		out.CostLines = append(out.CostLines, dto.CostLineResponse{
			ID:          l.ID,
			Name:        l.Name,
			ProductID:   l.ProductID,
			PriceUnit:   l.PriceUnit,
			SplitMethod: l.SplitMethod,
			AccountID:   l.AccountID,
		})
	}
	for _, l := range c.IndividualCostLines {
		out.IndividualLines = append(out.IndividualLines, dto.IndividualLineResponse{
			ID:         l.ID,
			Name:       l.Name,
			ProductID:  l.ProductID,
			PriceUnit:  l.PriceUnit,
			AccountID:  l.AccountID,
			ProductIDs: l.ProductIDs,
		})
	}
	for _, v := range c.ValuationAdjustmentLines {
		out.ValuationLines = append(out.ValuationLines, dto.ValuationLineResponse{
			ID:                             v.ID,
			CostLineID:                     v.CostLineID,
			MoveID:                         v.MoveID,
			ProductID:                      v.ProductID,
			WarehouseID:                    v.WarehouseID,
			Name:                           v.Name,
			Quantity:                       v.Quantity,
			FormerCost:                     v.FormerCost,
			AdditionalLandedCost:           v.AdditionalLandedCost,
			AdditionalIndividualLandedCost: v.AdditionalIndividualLandedCost,
			IndividualCostLineID:           v.IndividualCostLineID,
			FinalCost:                      v.FinalCost(),
			UnitFinalCost:                  v.UnitFinalCost(),
		})
	}
	return out
}

func toCheckResponse(r landedcost.CheckReport) *dto.CheckResponse {
	return &dto.CheckResponse{
		LandedCostID: r.LandedCostID,
		OK:           r.OK,
		Reason:       r.Reason,
		CostLineID:   r.CostLineID,
		Expected:     r.Expected,
		Actual:       r.Actual,
	}
}
