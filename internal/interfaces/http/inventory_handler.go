package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain"
)

// ReceiptService recepciones de inventario (lo implementa *inventory.ReceiptUseCase).
type ReceiptService interface {
	RegisterReceipt(ctx context.Context, companyID, userID string, in dto.RegisterReceiptRequest) (*dto.ReceiptResponse, error)
	GetReceipt(ctx context.Context, companyID, transactionID string) (*dto.ReceiptResponse, error)
}

// InventoryHandler maneja las recepciones de inventario (protegido).
type InventoryHandler struct {
	uc ReceiptService
}

func NewInventoryHandler(uc ReceiptService) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterReceipt godoc
// @Summary      Registrar recepción
// @Description  Registra entradas (IN) en una bodega bajo una misma transaction_id, que luego se usa como picking de un costo en destino.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReceiptRequest  true  "warehouse_id y líneas product_id, quantity, unit_cost"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) RegisterReceipt(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterReceiptRequest
	if resp := bindBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.uc.RegisterReceipt(c.UserContext(), companyID, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o bodega no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetReceipt godoc
// @Summary      Consultar recepción
// @Description  Movimientos IN de una recepción; su transaction_id es el que se agrega como picking a un costo en destino.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "transaction_id de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts/{id} [get]
func (h *InventoryHandler) GetReceipt(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.GetReceipt(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return catalogError(c, err, "recepción")
	}
	return c.JSON(out)
}
