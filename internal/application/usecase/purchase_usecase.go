package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

const purchaseDateLayout = "2006-01-02"

// PurchaseUseCase facturas de compra: alimentan las cuentas por pagar del
// panel financiero. Los abonos actualizan PaidAmount y marcan paid al cubrir
// el total.
type PurchaseUseCase struct {
	repo         repository.PurchaseInvoiceRepository
	supplierRepo repository.SupplierRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(repo repository.PurchaseInvoiceRepository, supplierRepo repository.SupplierRepository) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create registra una factura recibida de un suplidor.
func (uc *PurchaseUseCase) Create(ctx context.Context, tenant *entity.Tenant, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || in.DocumentNumber == "" || !in.TotalAmount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, tenant.SchemaName, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	issueDate, err := time.Parse(purchaseDateLayout, in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	dueDate := issueDate.AddDate(0, 0, 30)
	if in.DueDate != "" {
		dueDate, err = time.Parse(purchaseDateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	purchase := &entity.PurchaseInvoice{
		ID:             uuid.New().String(),
		SupplierID:     in.SupplierID,
		DocumentNumber: in.DocumentNumber,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		TotalAmount:    in.TotalAmount,
		PaidAmount:     decimal.Zero,
		Status:         entity.PurchaseStatusPending,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, tenant.SchemaName, purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, supplier.Name), nil
}

// RegisterPayment abona a una factura de compra. Al cubrir el total la marca paid.
func (uc *PurchaseUseCase) RegisterPayment(ctx context.Context, tenant *entity.Tenant, id string, in dto.RegisterPurchasePaymentRequest) (*dto.PurchaseResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	purchase, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	if purchase.Status == entity.PurchaseStatusPaid {
		return nil, domain.ErrImmutableState
	}
	purchase.PaidAmount = purchase.PaidAmount.Add(in.Amount)
	if purchase.PaidAmount.GreaterThanOrEqual(purchase.TotalAmount) {
		purchase.Status = entity.PurchaseStatusPaid
	}
	purchase.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant.SchemaName, purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, ""), nil
}

// GetByID obtiene una factura de compra con el nombre del suplidor.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, tenant *entity.Tenant, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	supplierName := ""
	if supplier, err := uc.supplierRepo.GetByID(ctx, tenant.SchemaName, purchase.SupplierID); err == nil && supplier != nil {
		supplierName = supplier.Name
	}
	return toPurchaseResponse(purchase, supplierName), nil
}

// List lista facturas de compra, opcionalmente filtradas por estado.
func (uc *PurchaseUseCase) List(ctx context.Context, tenant *entity.Tenant, status string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	list, err := uc.repo.List(ctx, tenant.SchemaName, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, ""))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.PurchaseInvoice, supplierName string) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:             p.ID,
		SupplierID:     p.SupplierID,
		SupplierName:   supplierName,
		DocumentNumber: p.DocumentNumber,
		IssueDate:      p.IssueDate.Format(purchaseDateLayout),
		DueDate:        p.DueDate.Format(purchaseDateLayout),
		TotalAmount:    p.TotalAmount,
		PaidAmount:     p.PaidAmount,
		Status:         p.Status,
		Notes:          p.Notes,
	}
}
