package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
)

// Greeting godoc
// @Summary      Comprobar acceso autenticado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /inventory/ [get]
func Greeting(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Inventory API is working for %s", GetUsername(c))})
}
