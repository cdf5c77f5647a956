package billing

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// DocumentUseCase genera la representación PDF de facturas y cotizaciones.
type DocumentUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	pdfGen       InvoicePDFGenerator
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	pdfGen InvoicePDFGenerator,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo:  invoiceRepo,
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		pdfGen:       pdfGen,
	}
}

// InvoicePDF genera el PDF de una factura con sus líneas enriquecidas.
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, tenant *entity.Tenant, id string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, tenant.SchemaName, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.enrich(ctx, tenant.SchemaName, items)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateInvoicePDF(ctx, tenant, inv, customer, lines)
}

// QuotePDF genera el PDF de una cotización.
func (uc *DocumentUseCase) QuotePDF(ctx context.Context, tenant *entity.Tenant, id string) ([]byte, error) {
	q, err := uc.quoteRepo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, tenant.SchemaName, q.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	qItems, err := uc.quoteRepo.GetItems(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	// las líneas de cotización comparten aritmética con las de factura
	items := make([]*entity.InvoiceItem, 0, len(qItems))
	for _, it := range qItems {
		items = append(items, &entity.InvoiceItem{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TaxRate:        it.TaxRate,
			TaxAmount:      it.TaxAmount,
			DiscountRate:   it.DiscountRate,
			DiscountAmount: it.DiscountAmount,
			TotalAmount:    it.TotalAmount,
		})
	}
	lines, err := uc.enrich(ctx, tenant.SchemaName, items)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateQuotePDF(ctx, tenant, q, customer, lines)
}

func (uc *DocumentUseCase) enrich(ctx context.Context, schema string, items []*entity.InvoiceItem) ([]LineForPDF, error) {
	lines := make([]LineForPDF, 0, len(items))
	for _, it := range items {
		line := LineForPDF{Item: it}
		product, err := uc.productRepo.GetByID(ctx, schema, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			line.ProductName = product.Name
			line.ProductSKU = product.SKU
			line.Unit = product.Unit
		}
		lines = append(lines, line)
	}
	return lines, nil
}
