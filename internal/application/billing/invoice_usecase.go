package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/application/fiscal"
	"github.com/quimidom/quimidom-api/internal/domain"
	domainbilling "github.com/quimidom/quimidom-api/internal/domain/billing"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/ncf"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// plazo de pago por defecto cuando el borrador no trae fecha de vencimiento.
const defaultCreditDays = 30

// InvoiceUseCase gobierna el ciclo de vida de la factura:
// draft → issued → voided. Solo los borradores admiten cambios de líneas o
// borrado; el NCF se asigna exactamente una vez al emitir, dentro de la misma
// transacción que el cambio de estado y el descuento de inventario.
type InvoiceUseCase struct {
	tx           TxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	paymentRepo  repository.PaymentRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	tx TxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		tx:           tx,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		paymentRepo:  paymentRepo,
	}
}

// buildItems valida las líneas de la petición y calcula sus montos.
// Precio en cero usa el precio de lista; la tasa ITBIS siempre viene del producto.
func buildItems(ctx context.Context, productRepo repository.ProductRepository, schema, invoiceID string, in []dto.InvoiceItemRequest) ([]*entity.InvoiceItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]*entity.InvoiceItem, 0, len(in))
	for _, req := range in {
		if req.ProductID == "" || !req.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := productRepo.GetByID(ctx, schema, req.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		price := req.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		amounts, err := domainbilling.ComputeLine(req.Quantity, price, product.TaxRate, req.DiscountRate)
		if err != nil {
			return nil, err
		}
		items = append(items, &entity.InvoiceItem{
			ID:             uuid.New().String(),
			InvoiceID:      invoiceID,
			ProductID:      req.ProductID,
			Quantity:       req.Quantity,
			UnitPrice:      price,
			TaxRate:        product.TaxRate,
			TaxAmount:      amounts.TaxAmount,
			DiscountRate:   req.DiscountRate,
			DiscountAmount: amounts.DiscountAmount,
			TotalAmount:    amounts.TotalAmount,
		})
	}
	return items, nil
}

// Create crea una factura en borrador con totales calculados. No asigna NCF.
func (uc *InvoiceUseCase) Create(ctx context.Context, tenant *entity.Tenant, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
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
	dueDate := now.AddDate(0, 0, defaultCreditDays)
	if in.DueDate != "" {
		dueDate, err = time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	seqType := customer.NCFType
	if seqType == "" {
		seqType = ncf.TipoConsumo
	}

	invoiceID := uuid.New().String()
	items, err := buildItems(ctx, uc.productRepo, schema, invoiceID, in.Items)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.Aggregate(items)

	inv := &entity.Invoice{
		ID:             invoiceID,
		CustomerID:     in.CustomerID,
		SequenceType:   seqType,
		IssueDate:      now,
		DueDate:        dueDate,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.TotalAmount,
		Status:         entity.InvoiceStatusDraft,
		PaymentStatus:  entity.PaymentStatusPending,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(ctx, schema, inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(ctx, schema, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(inv, customer.Name, items, decimal.Zero), nil
}

// Issue emite la factura: asigna NCF, descuenta inventario y cambia el estado,
// todo en una sola transacción. Precondiciones: borrador con al menos una
// línea, cliente asignado y vencimiento no anterior a la fecha de emisión.
func (uc *InvoiceUseCase) Issue(ctx context.Context, tenant *entity.Tenant, userID, id string) (*dto.InvoiceResponse, error) {
	schema := tenant.SchemaName
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err := uc.tx.RunIssue(ctx, func(
		seqRepo repository.FiscalSequenceRepository,
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(ctx, schema, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusDraft {
			return domain.ErrInvalidInvoiceState
		}

		items, err = invoiceRepo.GetItems(ctx, schema, id)
		if err != nil {
			return err
		}
		now := time.Now()
		if len(items) == 0 || inv.CustomerID == "" || truncateDay(inv.DueDate).Before(truncateDay(now)) {
			return domain.ErrIssuePrecondition
		}

		number, err := fiscal.Allocate(ctx, seqRepo, schema, inv.SequenceType, now)
		if err != nil {
			return err
		}

		// Salida de inventario por cada línea, referenciando la factura.
		for _, item := range items {
			if err := productRepo.DecrementStock(ctx, schema, item.ProductID, item.Quantity); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:           uuid.New().String(),
				ProductID:    item.ProductID,
				MovementType: entity.MovementOut,
				Quantity:     item.Quantity,
				Reference:    inv.ID,
				CreatedBy:    userID,
				CreatedAt:    now,
			}
			if err := movRepo.Create(ctx, schema, mov); err != nil {
				return err
			}
		}

		inv.NCF = number
		inv.Status = entity.InvoiceStatusIssued
		inv.IssueDate = now
		inv.UpdatedAt = now
		return invoiceRepo.Update(ctx, schema, inv)
	})
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(inv, "", items, decimal.Zero), nil
}

// Void anula la factura. Borrador o emitida pasan a voided; voided es terminal.
// El motivo es obligatorio. El NCF no se recupera y los pagos no se revierten.
func (uc *InvoiceUseCase) Void(ctx context.Context, tenant *entity.Tenant, id, reason string) (*dto.InvoiceResponse, error) {
	schema := tenant.SchemaName
	if reason == "" {
		return nil, domain.ErrVoidReasonRequired
	}
	var inv *entity.Invoice
	err := uc.tx.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(ctx, schema, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.InvoiceStatusVoided {
			return domain.ErrImmutableState
		}
		now := time.Now()
		inv.Status = entity.InvoiceStatusVoided
		inv.VoidedAt = &now
		inv.VoidedReason = reason
		inv.UpdatedAt = now
		return invoiceRepo.Update(ctx, schema, inv)
	})
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(inv, "", nil, decimal.Zero), nil
}

// Update edita una factura. Borrador: líneas (recalculadas), vencimiento y
// notas. Emitida: solamente notas. Anulada: nada.
func (uc *InvoiceUseCase) Update(ctx context.Context, tenant *entity.Tenant, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	schema := tenant.SchemaName
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err := uc.tx.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(ctx, schema, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		switch inv.Status {
		case entity.InvoiceStatusVoided:
			return domain.ErrImmutableState
		case entity.InvoiceStatusIssued:
			// Emitida: solo notas; cualquier otro cambio viola la inmutabilidad.
			if len(in.Items) > 0 || in.DueDate != "" {
				return domain.ErrImmutableState
			}
			if in.Notes != nil {
				inv.Notes = *in.Notes
			}
		case entity.InvoiceStatusDraft:
			if in.DueDate != "" {
				due, err := time.Parse(dateLayout, in.DueDate)
				if err != nil {
					return domain.ErrInvalidInput
				}
				inv.DueDate = due
			}
			if in.Notes != nil {
				inv.Notes = *in.Notes
			}
			if len(in.Items) > 0 {
				items, err = buildItems(ctx, uc.productRepo, schema, inv.ID, in.Items)
				if err != nil {
					return err
				}
				if err := invoiceRepo.DeleteItems(ctx, schema, inv.ID); err != nil {
					return err
				}
				for _, item := range items {
					if err := invoiceRepo.CreateItem(ctx, schema, item); err != nil {
						return err
					}
				}
				totals := domainbilling.Aggregate(items)
				inv.Subtotal = totals.Subtotal
				inv.TaxAmount = totals.TaxAmount
				inv.DiscountAmount = totals.DiscountAmount
				inv.TotalAmount = totals.TotalAmount
			}
		}
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(ctx, schema, inv)
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items, err = uc.invoiceRepo.GetItems(ctx, schema, id)
		if err != nil {
			return nil, err
		}
	}
	return invoiceToResponse(inv, "", items, decimal.Zero), nil
}

// Delete elimina una factura en borrador y sus líneas en cascada.
// Emitidas y anuladas no se borran jamás: ErrImmutableState.
func (uc *InvoiceUseCase) Delete(ctx context.Context, tenant *entity.Tenant, id string) error {
	schema := tenant.SchemaName
	return uc.tx.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		inv, err := invoiceRepo.GetByIDForUpdate(ctx, schema, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if !inv.IsMutable() {
			return domain.ErrImmutableState
		}
		if err := invoiceRepo.DeleteItems(ctx, schema, id); err != nil {
			return err
		}
		return invoiceRepo.Delete(ctx, schema, id)
	})
}

// Get obtiene la factura con líneas, pagos acumulados y saldo.
func (uc *InvoiceUseCase) Get(ctx context.Context, tenant *entity.Tenant, id string) (*dto.InvoiceResponse, error) {
	schema := tenant.SchemaName
	inv, err := uc.invoiceRepo.GetByID(ctx, schema, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(ctx, schema, id)
	if err != nil {
		return nil, err
	}
	paid, err := uc.paymentRepo.SumByInvoice(ctx, schema, id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(ctx, schema, inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return invoiceToResponse(inv, customerName, items, paid), nil
}

// List lista facturas con filtros opcionales.
func (uc *InvoiceUseCase) List(ctx context.Context, tenant *entity.Tenant, f repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.invoiceRepo.List(ctx, tenant.SchemaName, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, invoiceToResponse(inv, "", nil, decimal.Zero))
	}
	return out, nil
}

func invoiceToResponse(inv *entity.Invoice, customerName string, items []*entity.InvoiceItem, paid decimal.Decimal) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		CustomerName:   customerName,
		NCF:            inv.NCF,
		SequenceType:   inv.SequenceType,
		IssueDate:      inv.IssueDate.Format(dateLayout),
		DueDate:        inv.DueDate.Format(dateLayout),
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		Status:         inv.Status,
		PaymentStatus:  inv.PaymentStatus,
		PaidAmount:     paid,
		Balance:        domainbilling.RemainingBalance(inv.TotalAmount, paid),
		OverpaidAmount: domainbilling.OverpaidAmount(inv.TotalAmount, paid),
		Notes:          inv.Notes,
		VoidedReason:   inv.VoidedReason,
	}
	if inv.VoidedAt != nil {
		resp.VoidedAt = inv.VoidedAt.Format(time.RFC3339)
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

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
