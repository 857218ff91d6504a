package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
)

// BOMHandler lista de materiales: CRUD, cálculo de lote y deducción ad-hoc.
type BOMHandler struct {
	uc        *usecase.BOMUseCase
	calculate *inventory.CalculateUseCase
	deduction *inventory.DeductionUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase, calculate *inventory.CalculateUseCase, deduction *inventory.DeductionUseCase) *BOMHandler {
	return &BOMHandler{uc: uc, calculate: calculate, deduction: deduction}
}

// Create godoc
// @Summary      Agregar línea de BoM
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "product_id, material_id, quantity"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /bom/ [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID <= 0 || in.MaterialID <= 0 {
		return badRequest(c, "VALIDATION", "product_id y material_id son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar BoM
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  false  "Filtrar por producto"
// @Success      200         {array}   dto.BOMResponse
// @Router       /bom/ [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	var q struct {
		ProductID *int64 `query:"product_id"`
	}
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), q.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Calculate godoc
// @Summary      Calcular materiales para un lote
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        product_id          query  int   true   "Producto"
// @Param        batch_size          query  int   false  "Tamaño del lote (default 1)"
// @Param        check_availability  query  bool  false  "Incluir faltantes"
// @Success      200                 {object}  dto.BatchCalculationResponse
// @Failure      400                 {object}  dto.ErrorResponse
// @Router       /bom/calculate/ [get]
func (h *BOMHandler) Calculate(c *fiber.Ctx) error {
	var q dto.CalculateQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	if q.ProductID <= 0 {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	batch := int64(1)
	if q.BatchSize != nil {
		batch = *q.BatchSize
	}
	out, err := h.calculate.Calculate(c.UserContext(), q.ProductID, batch, q.CheckAvailability)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Deduct godoc
// @Summary      Descontar materiales para un lote
// @Description  Todo o nada: con un solo material insuficiente no se descuenta nada y se responde 422 con todas las líneas faltantes.
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  true  "Producto"
// @Param        batch_size  query  int  true  "Tamaño del lote"
// @Success      200         {object}  dto.StatusResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      422         {object}  dto.InsufficientStockResponse
// @Router       /bom/deduct/ [post]
func (h *BOMHandler) Deduct(c *fiber.Ctx) error {
	var in dto.DeductRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	if in.ProductID == 0 && len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	if in.ProductID <= 0 {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	res, err := h.deduction.DeductForProduct(c.UserContext(), in.ProductID, in.BatchSize)
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Inventory deducted for %d unit(s) of product %d", res.BatchSize, res.ProductID),
		TransactionID: res.TransactionID,
	})
}
