package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/application/usecase"
)

// PurchaseHandler facturas de compra (cuentas por pagar).
type PurchaseHandler struct {
	uc *usecase.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.Create(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetByID GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetByID(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// RegisterPayment POST /api/purchases/:id/payments
func (h *PurchaseHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPurchasePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.RegisterPayment(c.Context(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// List GET /api/purchases?status=&limit=50&offset=0
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), GetTenant(c), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
