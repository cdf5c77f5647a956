package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/application/usecase"
)

// SequenceHandler administración de secuencias fiscales NCF (solo admin).
type SequenceHandler struct {
	uc *usecase.SequenceUseCase
}

// NewSequenceHandler construye el handler.
func NewSequenceHandler(uc *usecase.SequenceUseCase) *SequenceHandler {
	return &SequenceHandler{uc: uc}
}

// Create POST /api/fiscal-sequences
// Registrar una secuencia nueva desactiva la vigente del mismo tipo.
func (h *SequenceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSequenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	seq, err := h.uc.Create(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(seq)
}

// Deactivate POST /api/fiscal-sequences/:id/deactivate
func (h *SequenceHandler) Deactivate(c *fiber.Ctx) error {
	seq, err := h.uc.Deactivate(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(seq)
}

// List GET /api/fiscal-sequences
func (h *SequenceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
