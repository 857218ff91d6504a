package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
)

// MaterialHandler materiales y reabastecimiento.
type MaterialHandler struct {
	uc      *usecase.MaterialUseCase
	restock *inventory.RestockUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, restock *inventory.RestockUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, restock: restock}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /materials/ [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        skip   query  int  false  "Desplazamiento"
// @Param        limit  query  int  false  "Máximo de filas (default 100)"
// @Success      200    {array}   dto.MaterialResponse
// @Router       /materials/ [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Reabastecer material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "material_id, quantity, note"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /materials/restock/ [post]
func (h *MaterialHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.MaterialID <= 0 {
		return badRequest(c, "VALIDATION", "material_id es requerido")
	}
	res, err := h.restock.Restock(c.UserContext(), inventory.RestockInput{
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		Note:       in.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Material '%s' restocked by %s. New total: %s", res.Material.Name, in.Quantity.String(), res.Material.Quantity.String()),
		TransactionID: res.Log.TransactionID,
	})
}

// LowStock godoc
// @Summary      Materiales bajo el punto de reorden
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MaterialResponse
// @Router       /materials/low_stock/ [get]
func (h *MaterialHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
