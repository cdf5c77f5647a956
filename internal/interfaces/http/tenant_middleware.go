package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// LocalTenant clave de c.Locals para el tenant resuelto.
const LocalTenant = "tenant"

// TenantMiddleware resuelve el tenant de cada petición: primero por la
// cabecera X-Tenant (slug), si no por el hostname. El tenant resuelto viaja en
// c.Locals; nunca en estado global del proceso.
func TenantMiddleware(tenantRepo repository.TenantRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tenant *entity.Tenant
		var err error

		if slug := c.Get("X-Tenant"); slug != "" {
			tenant, err = tenantRepo.GetBySlug(c.Context(), slug)
		} else {
			host := c.Hostname()
			if i := strings.IndexByte(host, ':'); i >= 0 {
				host = host[:i]
			}
			tenant, err = tenantRepo.GetByHostname(c.Context(), host)
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error resolviendo tenant"})
		}
		if tenant == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no reconocido"})
		}
		if !tenant.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "TENANT_INACTIVE", Message: "tenant suspendido"})
		}
		c.Locals(LocalTenant, tenant)
		return c.Next()
	}
}

// GetTenant devuelve el tenant del contexto (después del middleware de tenant).
func GetTenant(c *fiber.Ctx) *entity.Tenant {
	v := c.Locals(LocalTenant)
	if v == nil {
		return nil
	}
	t, _ := v.(*entity.Tenant)
	return t
}
