package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// PaymentRepository pagos (append-only) y catálogo de formas de pago.
// SumByInvoice devuelve Σ(amount) de los pagos de la factura; es la fuente del
// estado de pago derivado.
type PaymentRepository interface {
	Create(ctx context.Context, schema string, p *entity.Payment) error
	ListByInvoice(ctx context.Context, schema, invoiceID string) ([]*entity.Payment, error)
	SumByInvoice(ctx context.Context, schema, invoiceID string) (decimal.Decimal, error)
	GetMethod(ctx context.Context, schema, id string) (*entity.PaymentMethod, error)
	ListMethods(ctx context.Context, schema string) ([]*entity.PaymentMethod, error)
}
