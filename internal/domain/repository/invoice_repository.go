package repository

import (
	"context"
	"time"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	Status        string
	PaymentStatus string
	CustomerID    string
	From, To      *time.Time
	Limit, Offset int
}

// InvoiceRepository facturas y sus líneas.
// GetByIDForUpdate bloquea la fila (FOR UPDATE) para transiciones de estado y
// registro de pagos; debe usarse dentro de una transacción.
type InvoiceRepository interface {
	Create(ctx context.Context, schema string, inv *entity.Invoice) error
	CreateItem(ctx context.Context, schema string, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, schema, id string) (*entity.Invoice, error)
	GetByIDForUpdate(ctx context.Context, schema, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, schema, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, schema string, f InvoiceFilter) ([]*entity.Invoice, error)
	Update(ctx context.Context, schema string, inv *entity.Invoice) error
	DeleteItems(ctx context.Context, schema, invoiceID string) error
	Delete(ctx context.Context, schema, id string) error
}
