package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment representa un pago registrado contra una factura emitida.
// Los pagos son append-only: no se editan ni se borran.
type Payment struct {
	ID              string
	InvoiceID       string
	PaymentMethodID string
	Amount          decimal.Decimal
	ReferenceNumber string
	PaymentDate     time.Time
	Notes           string
	CreatedAt       time.Time
}

// PaymentMethod catálogo de formas de pago (efectivo, transferencia, etc.).
type PaymentMethod struct {
	ID       string
	Name     string
	IsActive bool
}
