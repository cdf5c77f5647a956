package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización. Converted es terminal: una cotización se convierte
// en factura exactamente una vez.
const (
	QuoteStatusPending   = "pending"
	QuoteStatusApproved  = "approved"
	QuoteStatusRejected  = "rejected"
	QuoteStatusConverted = "converted"
)

// Quote representa una cotización. Misma aritmética de líneas que la factura.
type Quote struct {
	ID             string
	CustomerID     string
	QuoteDate      time.Time
	ValidUntil     time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         string
	InvoiceID      string // factura generada al convertir
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// QuoteItem línea de cotización; se copia a la factura al convertir.
type QuoteItem struct {
	ID             string
	QuoteID        string
	ProductID      string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}
