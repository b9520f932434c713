package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
)

const (
	localCompanyID = "company_id"
	localUserID    = "user_id"
)

// TenantMiddleware resuelve la empresa y el usuario desde las cabeceras
// X-Company-Id y X-User-Id (la autenticación corre en el gateway, aguas
// arriba de este servicio). Sin empresa no hay acceso.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Get("X-Company-Id")
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "falta la cabecera X-Company-Id",
			})
		}
		c.Locals(localCompanyID, companyID)
		c.Locals(localUserID, c.Get("X-User-Id"))
		return c.Next()
	}
}

// GetCompanyID devuelve la empresa resuelta por el middleware.
func GetCompanyID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localCompanyID).(string); ok {
		return v
	}
	return ""
}

// GetUserID devuelve el usuario resuelto por el middleware (puede ser vacío).
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}
