package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/analytics"
)

// FinanceHandler panel financiero del tenant.
type FinanceHandler struct {
	uc *analytics.FinanceUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *analytics.FinanceUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Summary GET /api/finance/summary
// Se calcula bajo demanda en cada petición; no hay caché.
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
