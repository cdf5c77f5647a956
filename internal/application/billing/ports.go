package billing

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// repositorios atados a la tx. Cada método cubre una unidad atómica del
// negocio; si fn retorna error se hace rollback completo.
type TxRunner interface {
	// RunIssue emisión de factura: asignación de NCF, descuento de inventario
	// y cambio de estado en una sola unidad atómica.
	RunIssue(ctx context.Context, fn func(
		seqRepo repository.FiscalSequenceRepository,
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error

	// RunInvoice mutaciones de factura en borrador (crear, editar, borrar).
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
	) error) error

	// RunPayment registro de pago más recálculo del estado de pago.
	RunPayment(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error

	// RunQuote conversión de cotización a factura en borrador.
	RunQuote(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación imprimible de un documento.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, tenant *entity.Tenant, inv *entity.Invoice, customer *entity.Customer, items []LineForPDF) ([]byte, error)
	GenerateQuotePDF(ctx context.Context, tenant *entity.Tenant, q *entity.Quote, customer *entity.Customer, items []LineForPDF) ([]byte, error)
}

// LineForPDF línea enriquecida con datos del producto para el render.
type LineForPDF struct {
	Item        *entity.InvoiceItem
	ProductName string
	ProductSKU  string
	Unit        string
}
