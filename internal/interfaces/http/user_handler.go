package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
	"github.com/jhoicas/landed-cost-api/internal/domain"
)

// UserAdmin administración de usuarios (lo implementa *usecase.UserUseCase).
type UserAdmin interface {
	Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error)
	SetStatus(ctx context.Context, companyID, actorID, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error)
}

// UserHandler rutas de usuarios (solo admin).
type UserHandler struct {
	uc UserAdmin
}

// NewUserHandler construye el handler.
func NewUserHandler(uc UserAdmin) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Description  Alta de un admin o bodeguero en la empresa del token.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateUserRequest
	if resp := bindBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return catalogError(c, err, "usuario")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	page, ok := queryPage(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.UserContext(), companyID, page)
	if err != nil {
		return catalogError(c, err, "usuario")
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Activar o desactivar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserStatusRequest  true  "active | inactive"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/status [put]
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateUserStatusRequest
	if resp := bindBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.uc.SetStatus(c.UserContext(), companyID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return catalogError(c, err, "usuario")
	}
	return c.JSON(out)
}
