package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/application/usecase"
)

// AdminKeyMiddleware protege las rutas de administración de plataforma con la
// cabecera X-Admin-Key. Con clave vacía las rutas quedan deshabilitadas.
func AdminKeyMiddleware(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
		}
		got := c.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "clave de administración inválida"})
		}
		return c.Next()
	}
}

// TenantHandler administración de tenants de la plataforma. Vive fuera del
// middleware de tenant: opera sobre public.tenants.
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create POST /admin/tenants
// Registra el tenant y aprovisiona su esquema.
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tenant, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// Provision POST /admin/tenants/:id/provision
func (h *TenantHandler) Provision(c *fiber.Ctx) error {
	tenant, err := h.uc.Provision(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tenant)
}

// GetByID GET /admin/tenants/:id
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
	tenant, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tenant)
}

// List GET /admin/tenants
func (h *TenantHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
