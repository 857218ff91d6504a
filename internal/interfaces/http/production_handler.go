package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
)

// ProductionHandler órdenes de producción, su estado y su audit log.
type ProductionHandler struct {
	uc        *usecase.ProductionOrderUseCase
	deduction *inventory.DeductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *usecase.ProductionOrderUseCase, deduction *inventory.DeductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc, deduction: deduction}
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "product_id, batch_size, note"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /production_orders/ [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID <= 0 {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes (más recientes primero)
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductionOrderResponse
// @Router       /production_orders/ [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
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

// Get godoc
// @Summary      Obtener orden por ID
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /production_orders/{id} [get]
func (h *ProductionHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /production_orders/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Production order %d deleted", id)})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path   int     true   "ID de la orden"
// @Param        status  query  string  false  "planned | in_progress | complete"
// @Param        body    body   dto.UpdateStatusRequest  false  "status (alternativa a query)"
// @Success      200     {object}  dto.ProductionOrderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /production_orders/{id}/status [put]
func (h *ProductionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	status := c.Query("status")
	if status == "" && len(c.Body()) > 0 {
		var in dto.UpdateStatusRequest
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
		status = in.Status
	}
	if status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Deduct godoc
// @Summary      Descontar materiales de la orden y completarla
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.InsufficientStockResponse
// @Router       /production_orders/{id}/deduct/ [post]
func (h *ProductionHandler) Deduct(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	order, err := h.deduction.DeductForOrder(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(usecase.ToProductionOrderResponse(order))
}

// Audit godoc
// @Summary      Audit log de la orden (más reciente primero)
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {array}   dto.AuditLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /production_orders/{id}/audit [get]
func (h *ProductionHandler) Audit(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.ListAudit(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
