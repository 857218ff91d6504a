package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
)

// LogHandler consulta del libro de inventario.
type LogHandler struct {
	uc *usecase.InventoryLogUseCase
}

func NewLogHandler(uc *usecase.InventoryLogUseCase) *LogHandler {
	return &LogHandler{uc: uc}
}

// List godoc
// @Summary      Movimientos de inventario (más recientes primero)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  int     false  "Filtrar por material"
// @Param        type         query  string  false  "restock | deduction"
// @Param        limit        query  int     false  "Máximo 500, default 100"
// @Success      200          {array}   dto.InventoryLogResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /logs/inventory/ [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryLogQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
