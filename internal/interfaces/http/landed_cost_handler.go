package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain"
)

// LandedCostService casos de uso de costos en destino (lo implementa *landedcost.UseCase).
type LandedCostService interface {
	Create(ctx context.Context, companyID string, in dto.CreateLandedCostRequest) (*dto.LandedCostResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.LandedCostResponse, error)
	List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.LandedCostListResponse, error)
	AddIndividualLine(ctx context.Context, companyID, costID string, in dto.AddIndividualLineRequest) (*dto.LandedCostResponse, error)
	RemoveIndividualLine(ctx context.Context, companyID, costID, lineID string) error
	Compute(ctx context.Context, companyID, id string) (*dto.LandedCostResponse, error)
	Check(ctx context.Context, companyID, id string) (*dto.CheckResponse, error)
	Validate(ctx context.Context, companyID, userID, id string) (*dto.LandedCostResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Report(ctx context.Context, companyID, id string) ([]byte, error)
}

// LandedCostHandler maneja las peticiones HTTP de costos en destino (protegido).
type LandedCostHandler struct {
	svc LandedCostService
}

// NewLandedCostHandler construye el handler.
func NewLandedCostHandler(svc LandedCostService) *LandedCostHandler {
	return &LandedCostHandler{svc: svc}
}

// landedCostError traduce errores de dominio a HTTP.
func landedCostError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrLandedCostDone):
		status, code = fiber.StatusConflict, "LANDED_COST_DONE"
	case errors.Is(err, domain.ErrInvariantViolation):
		status, code = fiber.StatusConflict, "INVARIANT_VIOLATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "LOCKED"
	case errors.Is(err, domain.ErrDivisionByZero):
		status, code = fiber.StatusUnprocessableEntity, "DIVISION_BY_ZERO"
	case errors.Is(err, domain.ErrNoValuationLines):
		status, code = fiber.StatusUnprocessableEntity, "NO_VALUATION_LINES"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func requireCompany(c *fiber.Ctx) (string, bool) {
	companyID := GetCompanyID(c)
	return companyID, companyID != ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// Create godoc
// @Summary      Crear costo en destino
// @Tags         landed-costs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLandedCostRequest  true  "nombre, recepciones y líneas de costo"
// @Success      201   {object}  dto.LandedCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/landed-costs [post]
func (h *LandedCostHandler) Create(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateLandedCostRequest
	if resp := bindBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.svc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return landedCostError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar costos en destino
// @Tags         landed-costs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.LandedCostListResponse
// @Router       /api/landed-costs [get]
func (h *LandedCostHandler) List(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	page, ok := queryPage(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.svc.List(c.UserContext(), companyID, page)
	if err != nil {
		return landedCostError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener costo en destino
// @Tags         landed-costs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del costo"
// @Success      200  {object}  dto.LandedCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id} [get]
func (h *LandedCostHandler) Get(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.svc.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return landedCostError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar costo en borrador
// @Tags         landed-costs
// @Security     Bearer
// @Param        id   path  string  true  "ID del costo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id} [delete]
func (h *LandedCostHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.svc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return landedCostError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddIndividualLine godoc
// @Summary      Agregar gasto individual
// @Description  Gasto que se reparte solo entre los productos indicados, proporcional a su costo anterior.
// @Tags         landed-costs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del costo"
// @Param        body  body  dto.AddIndividualLineRequest  true  "producto de servicio o nombre/valor, y productos destino"
// @Success      201   {object}  dto.LandedCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id}/individual-lines [post]
func (h *LandedCostHandler) AddIndividualLine(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.AddIndividualLineRequest
	if resp := bindBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.svc.AddIndividualLine(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return landedCostError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveIndividualLine godoc
// @Summary      Eliminar gasto individual
// @Tags         landed-costs
// @Security     Bearer
// @Param        id      path  string  true  "ID del costo"
// @Param        lineId  path  string  true  "ID del gasto individual"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id}/individual-lines/{lineId} [delete]
func (h *LandedCostHandler) RemoveIndividualLine(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.svc.RemoveIndividualLine(c.UserContext(), companyID, c.Params("id"), c.Params("lineId")); err != nil {
		return landedCostError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Compute godoc
// @Summary      Calcular líneas de valoración
// @Tags         landed-costs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del costo"
// @Success      200  {object}  dto.LandedCostResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id}/compute [post]
func (h *LandedCostHandler) Compute(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.svc.Compute(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return landedCostError(c, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Verificar cuadre de ajustes
// @Tags         landed-costs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del costo"
// @Success      200  {object}  dto.CheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id}/check [get]
func (h *LandedCostHandler) Check(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.svc.Check(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return landedCostError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar costo en destino
// @Description  Revaloriza el costo promedio de los productos y deja el costo en estado done.
// @Tags         landed-costs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del costo"
// @Success      200  {object}  dto.LandedCostResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id}/validate [post]
func (h *LandedCostHandler) Validate(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.svc.Validate(c.UserContext(), companyID, GetUserID(c), c.Params("id"))
	if err != nil {
		return landedCostError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de valoración
// @Tags         landed-costs
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del costo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landed-costs/{id}/report [get]
func (h *LandedCostHandler) Report(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	pdf, err := h.svc.Report(c.UserContext(), companyID, id)
	if err != nil {
		return landedCostError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="costo-en-destino-`+id+`.pdf"`)
	return c.Send(pdf)
}
