package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// ProductRepository catálogo de productos del tenant.
// DecrementStock descuenta existencia de forma atómica y retorna
// domain.ErrInsufficientStock si no hay suficiente; se usa dentro de la
// transacción de emisión de factura.
type ProductRepository interface {
	Create(ctx context.Context, schema string, p *entity.Product) error
	GetByID(ctx context.Context, schema, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, schema, sku string) (*entity.Product, error)
	List(ctx context.Context, schema string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, schema string, p *entity.Product) error
	DecrementStock(ctx context.Context, schema, id string, qty decimal.Decimal) error
	IncrementStock(ctx context.Context, schema, id string, qty decimal.Decimal) error
}

// StockMovementRepository bitácora de movimientos de inventario (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, schema string, m *entity.StockMovement) error
	ListByProduct(ctx context.Context, schema, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
