package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto químico del catálogo del tenant.
// Stock es la existencia total; cada venta emitida genera un movimiento OUT.
type Product struct {
	ID          string
	SKU         string // código único por tenant
	Name        string
	Description string
	Unit        string // unidad de venta: kg, L, galón, saco, unidad
	Price       decimal.Decimal
	Cost        decimal.Decimal
	TaxRate     decimal.Decimal // ITBIS: 0, 16 o 18 (%)
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
