package http

import (
	"context"
	"fmt"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// userResolver es el contrato mínimo que necesita LoadUser para volver a leer el usuario del token.
// Lo implementa *auth.AuthUseCase.
type userResolver interface {
	Resolve(ctx context.Context, username string) (*entity.User, error)
}

// LoadUser resuelve el username del token contra el almacenamiento y refresca el rol en Locals.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → el usuario del token ya no existe.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func LoadUser(resolver userResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := GetUsername(c)
		if username == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "username no encontrado en el token"})
		}
		user, err := resolver.Resolve(c.UserContext(), username)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "USER_CHECK_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario del token no existe"})
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol del usuario está en roles.
// Sin rol en el contexto responde 401 MISSING_ROLE; con rol no permitido, 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: fmt.Sprintf("User role '%s' is not permitted to access this resource.", role),
			})
		}
		return c.Next()
	}
}
