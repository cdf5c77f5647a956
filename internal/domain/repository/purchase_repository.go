package repository

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// SupplierRepository suplidores del tenant.
type SupplierRepository interface {
	Create(ctx context.Context, schema string, s *entity.Supplier) error
	GetByID(ctx context.Context, schema, id string) (*entity.Supplier, error)
	List(ctx context.Context, schema string, limit, offset int) ([]*entity.Supplier, error)
	Update(ctx context.Context, schema string, s *entity.Supplier) error
}

// PurchaseInvoiceRepository facturas de compra (cuentas por pagar).
type PurchaseInvoiceRepository interface {
	Create(ctx context.Context, schema string, p *entity.PurchaseInvoice) error
	GetByID(ctx context.Context, schema, id string) (*entity.PurchaseInvoice, error)
	List(ctx context.Context, schema, status string, limit, offset int) ([]*entity.PurchaseInvoice, error)
	Update(ctx context.Context, schema string, p *entity.PurchaseInvoice) error
}
