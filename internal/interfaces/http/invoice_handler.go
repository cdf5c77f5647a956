package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// InvoiceHandler ciclo de vida de facturas: borrador, emisión con NCF,
// anulación, pagos y PDF.
type InvoiceHandler struct {
	invoiceUC  *billing.InvoiceUseCase
	paymentUC  *billing.PaymentUseCase
	documentUC *billing.DocumentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoiceUC *billing.InvoiceUseCase, paymentUC *billing.PaymentUseCase, documentUC *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoiceUC: invoiceUC, paymentUC: paymentUC, documentUC: documentUC}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.invoiceUC.Create(c.Context(), GetTenant(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.invoiceUC.Get(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Update PUT /api/invoices/:id (solo borradores)
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.invoiceUC.Update(c.Context(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Delete DELETE /api/invoices/:id (solo borradores)
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoiceUC.Delete(c.Context(), GetTenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Issue POST /api/invoices/:id/issue
// Asigna el NCF y congela la factura.
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	inv, err := h.invoiceUC.Issue(c.Context(), GetTenant(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Void POST /api/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.invoiceUC.Void(c.Context(), GetTenant(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// List GET /api/invoices?status=&payment_status=&customer_id=&from=&to=&limit=50&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	f := repository.InvoiceFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		CustomerID:    c.Query("customer_id"),
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
		}
		f.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
		}
		f.To = &t
	}
	list, err := h.invoiceUC.List(c.Context(), GetTenant(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RecordPayment POST /api/invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.paymentUC.Record(c.Context(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ListPayments GET /api/invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *fiber.Ctx) error {
	list, err := h.paymentUC.ListByInvoice(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListPaymentMethods GET /api/payment-methods
func (h *InvoiceHandler) ListPaymentMethods(c *fiber.Ctx) error {
	list, err := h.paymentUC.ListMethods(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// PDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.documentUC.InvoicePDF(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="factura.pdf"`)
	return c.Send(doc)
}
