package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	domainbilling "github.com/quimidom/quimidom-api/internal/domain/billing"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/ncf"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// vigencia por defecto de una cotización.
const defaultQuoteDays = 15

// QuoteUseCase cotizaciones: misma aritmética que la factura y conversión a
// factura en borrador exactamente una vez (converted es terminal).
type QuoteUseCase struct {
	tx           TxRunner
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	tx TxRunner,
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		tx:           tx,
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Create crea una cotización pendiente con montos calculados.
func (uc *QuoteUseCase) Create(ctx context.Context, tenant *entity.Tenant, userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	schema := tenant.SchemaName
	if in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, schema, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	validUntil := now.AddDate(0, 0, defaultQuoteDays)
	if in.ValidUntil != "" {
		validUntil, err = time.Parse(dateLayout, in.ValidUntil)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	quoteID := uuid.New().String()
	invItems, err := buildItems(ctx, uc.productRepo, schema, quoteID, in.Items)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.Aggregate(invItems)

	q := &entity.Quote{
		ID:             quoteID,
		CustomerID:     in.CustomerID,
		QuoteDate:      now,
		ValidUntil:     validUntil,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.TotalAmount,
		Status:         entity.QuoteStatusPending,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := toQuoteItems(quoteID, invItems)

	if err := uc.quoteRepo.Create(ctx, schema, q); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := uc.quoteRepo.CreateItem(ctx, schema, item); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(q, customer.Name, items), nil
}

// Approve marca la cotización como aprobada. Solo desde pending.
func (uc *QuoteUseCase) Approve(ctx context.Context, tenant *entity.Tenant, id string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, tenant, id, entity.QuoteStatusApproved)
}

// Reject marca la cotización como rechazada. Solo desde pending.
func (uc *QuoteUseCase) Reject(ctx context.Context, tenant *entity.Tenant, id string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, tenant, id, entity.QuoteStatusRejected)
}

func (uc *QuoteUseCase) transition(ctx context.Context, tenant *entity.Tenant, id, target string) (*dto.QuoteResponse, error) {
	schema := tenant.SchemaName
	q, err := uc.quoteRepo.GetByID(ctx, schema, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.Status != entity.QuoteStatusPending {
		return nil, domain.ErrInvalidQuoteState
	}
	q.Status = target
	q.UpdatedAt = time.Now()
	if err := uc.quoteRepo.Update(ctx, schema, q); err != nil {
		return nil, err
	}
	return uc.toResponse(q, "", nil), nil
}

// Convert convierte una cotización aprobada en una factura en borrador, una
// sola vez, en una transacción: las líneas se recalculan con precios de la
// cotización y la cotización queda en converted apuntando a la factura.
func (uc *QuoteUseCase) Convert(ctx context.Context, tenant *entity.Tenant, userID, id string) (*dto.InvoiceResponse, error) {
	schema := tenant.SchemaName
	customer := (*entity.Customer)(nil)
	var inv *entity.Invoice
	var invItems []*entity.InvoiceItem

	err := uc.tx.RunQuote(ctx, func(
		quoteRepo repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		q, err := quoteRepo.GetByIDForUpdate(ctx, schema, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.Status != entity.QuoteStatusApproved {
			return domain.ErrInvalidQuoteState
		}

		customer, err = uc.customerRepo.GetByID(ctx, schema, q.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		qItems, err := quoteRepo.GetItems(ctx, schema, id)
		if err != nil {
			return err
		}
		if len(qItems) == 0 {
			return domain.ErrInvalidQuoteState
		}

		seqType := customer.NCFType
		if seqType == "" {
			seqType = ncf.TipoConsumo
		}

		now := time.Now()
		inv = &entity.Invoice{
			ID:             uuid.New().String(),
			CustomerID:     q.CustomerID,
			SequenceType:   seqType,
			IssueDate:      now,
			DueDate:        now.AddDate(0, 0, defaultCreditDays),
			Subtotal:       q.Subtotal,
			TaxAmount:      q.TaxAmount,
			DiscountAmount: q.DiscountAmount,
			TotalAmount:    q.TotalAmount,
			Status:         entity.InvoiceStatusDraft,
			PaymentStatus:  entity.PaymentStatusPending,
			Notes:          q.Notes,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := invoiceRepo.Create(ctx, schema, inv); err != nil {
			return err
		}
		for _, qi := range qItems {
			item := &entity.InvoiceItem{
				ID:             uuid.New().String(),
				InvoiceID:      inv.ID,
				ProductID:      qi.ProductID,
				Quantity:       qi.Quantity,
				UnitPrice:      qi.UnitPrice,
				TaxRate:        qi.TaxRate,
				TaxAmount:      qi.TaxAmount,
				DiscountRate:   qi.DiscountRate,
				DiscountAmount: qi.DiscountAmount,
				TotalAmount:    qi.TotalAmount,
			}
			if err := invoiceRepo.CreateItem(ctx, schema, item); err != nil {
				return err
			}
			invItems = append(invItems, item)
		}

		q.Status = entity.QuoteStatusConverted
		q.InvoiceID = inv.ID
		q.UpdatedAt = now
		return quoteRepo.Update(ctx, schema, q)
	})
	if err != nil {
		return nil, err
	}

	return invoiceToResponse(inv, customer.Name, invItems, decimal.Zero), nil
}

// Get obtiene la cotización con líneas.
func (uc *QuoteUseCase) Get(ctx context.Context, tenant *entity.Tenant, id string) (*dto.QuoteResponse, error) {
	schema := tenant.SchemaName
	q, err := uc.quoteRepo.GetByID(ctx, schema, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItems(ctx, schema, id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(ctx, schema, q.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(q, customerName, items), nil
}

// List lista cotizaciones, opcionalmente filtradas por estado.
func (uc *QuoteUseCase) List(ctx context.Context, tenant *entity.Tenant, status string, limit, offset int) ([]*dto.QuoteResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.quoteRepo.List(ctx, tenant.SchemaName, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, uc.toResponse(q, "", nil))
	}
	return out, nil
}

func toQuoteItems(quoteID string, items []*entity.InvoiceItem) []*entity.QuoteItem {
	out := make([]*entity.QuoteItem, 0, len(items))
	for _, it := range items {
		out = append(out, &entity.QuoteItem{
			ID:             uuid.New().String(),
			QuoteID:        quoteID,
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
	return out
}

func (uc *QuoteUseCase) toResponse(q *entity.Quote, customerName string, items []*entity.QuoteItem) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:             q.ID,
		CustomerID:     q.CustomerID,
		CustomerName:   customerName,
		QuoteDate:      q.QuoteDate.Format(dateLayout),
		ValidUntil:     q.ValidUntil.Format(dateLayout),
		Subtotal:       q.Subtotal,
		TaxAmount:      q.TaxAmount,
		DiscountAmount: q.DiscountAmount,
		TotalAmount:    q.TotalAmount,
		Status:         q.Status,
		InvoiceID:      q.InvoiceID,
		Notes:          q.Notes,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
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
	return resp
}
