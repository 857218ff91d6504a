package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
)

// ErrorHandler traduce los errores que devuelven los handlers a respuestas JSON.
// Los errores de dominio tienen status propio; el resto se registra y sale como 500 genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(toInsufficientResponse(insufficient))
		}

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNoBillOfMaterial):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_BOM", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
		case errors.Is(err, domain.ErrMaterialNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "MATERIAL_NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
		}

		log.WithContext(c.UserContext()).Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

func toInsufficientResponse(e *domain.InsufficientStockError) dto.InsufficientStockResponse {
	lines := make([]dto.ShortfallDTO, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		lines = append(lines, dto.ShortfallDTO{Material: s.MaterialName, Required: s.Required, Available: s.Available})
	}
	return dto.InsufficientStockResponse{
		Code:    "INSUFFICIENT_STOCK",
		Message: "Insufficient materials",
		Detail:  dto.InsufficientDetail{Insufficient: lines},
	}
}

// badRequest respuesta 400 para cuerpos y parámetros mal formados.
func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// paramID lee un :id entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
