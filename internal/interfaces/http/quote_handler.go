package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/application/dto"
)

// QuoteHandler cotizaciones: borrador, aprobación y conversión a factura.
type QuoteHandler struct {
	quoteUC    *billing.QuoteUseCase
	documentUC *billing.DocumentUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(quoteUC *billing.QuoteUseCase, documentUC *billing.DocumentUseCase) *QuoteHandler {
	return &QuoteHandler{quoteUC: quoteUC, documentUC: documentUC}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quote, err := h.quoteUC.Create(c.Context(), GetTenant(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.quoteUC.Get(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// List GET /api/quotes?status=&limit=50&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.quoteUC.List(c.Context(), GetTenant(c), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Approve POST /api/quotes/:id/approve
func (h *QuoteHandler) Approve(c *fiber.Ctx) error {
	quote, err := h.quoteUC.Approve(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Reject POST /api/quotes/:id/reject
func (h *QuoteHandler) Reject(c *fiber.Ctx) error {
	quote, err := h.quoteUC.Reject(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Convert POST /api/quotes/:id/convert
// Produce una factura en borrador a partir de una cotización aprobada.
func (h *QuoteHandler) Convert(c *fiber.Ctx) error {
	inv, err := h.quoteUC.Convert(c.Context(), GetTenant(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// PDF GET /api/quotes/:id/pdf
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.documentUC.QuotePDF(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cotizacion.pdf"`)
	return c.Send(doc)
}
